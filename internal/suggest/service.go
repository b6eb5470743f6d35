// Package suggest turns a free-text renovation request into a list of
// estimate lines and advice by calling a generative model.
package suggest

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
	"github.com/7svn/smeta-backend/internal/logger"
)

const DefaultTimeout = 60 * time.Second

var errRateLimited = errors.New("too many suggestion requests, try again later")

type Options struct {
	Timeout time.Duration
	// RatePerMinute limits calls across all owners; 0 disables the limit.
	RatePerMinute int
}

type Service struct {
	gen     Generator
	timeout time.Duration
	limiter *rate.Limiter
}

func NewService(gen Generator, opt Options) *Service {
	if opt.Timeout <= 0 {
		opt.Timeout = DefaultTimeout
	}
	s := &Service{gen: gen, timeout: opt.Timeout}
	if opt.RatePerMinute > 0 {
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opt.RatePerMinute)), opt.RatePerMinute)
	}
	return s
}

// Suggest asks the model for items and advice. Every error it returns is
// classified; see Classify and UserMessage.
func (s *Service) Suggest(ctx context.Context, prompt string) (domain.Suggestion, error) {
	log := logger.New(ctx)

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		recordRejected()
		return domain.Suggestion{}, Classify(domain.ErrEmptyPrompt)
	}
	if s.limiter != nil && !s.limiter.Allow() {
		recordRejected()
		return domain.Suggestion{}, &Error{Kind: ErrTransient, Err: errRateLimited}
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.gen.Generate(cctx, prompt)
	var out domain.Suggestion
	if err == nil {
		out, err = Parse(text)
	}
	err = Classify(err)
	recordCall(time.Since(start), err)

	if err != nil {
		log.LogErrorf("suggest.generate", "kind=%s error=%v", KindName(err), err)
		return domain.Suggestion{}, err
	}
	log.LogInfof("suggest.generate", "items=%d latency=%s", len(out.Items), time.Since(start))
	return out, nil
}
