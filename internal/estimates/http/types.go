package http

import (
	"bytes"
	"encoding/json"

	"github.com/7svn/smeta-backend/internal/estimates/aggregate"
	"github.com/7svn/smeta-backend/internal/estimates/domain"
	"github.com/7svn/smeta-backend/internal/estimates/mutate"
)

// flexNumber keeps the raw text of a numeric field, which may arrive as a
// JSON number or as a string typed by the user. It is coerced later by
// the domain input rules, so text that does not parse becomes 0.
type flexNumber string

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = flexNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = flexNumber(num)
	return nil
}

type createProjectReq struct {
	TemplateID string `json:"template_id"`
}

type suggestReq struct {
	Prompt string `json:"prompt"`
}

type renameProjectReq struct {
	Name string `json:"name"`
}

type addItemReq struct {
	Category string `json:"category"`
}

type updateItemReq struct {
	Category     *string     `json:"category"`
	Name         *string     `json:"name"`
	Unit         *string     `json:"unit"`
	Quantity     *flexNumber `json:"quantity"`
	PricePerUnit *flexNumber `json:"pricePerUnit"`
}

func (r updateItemReq) patch() (domain.ItemPatch, error) {
	var p domain.ItemPatch
	p.Category = r.Category
	p.Name = r.Name
	if r.Unit != nil {
		u, err := domain.ParseUnit(*r.Unit)
		if err != nil {
			return p, err
		}
		p.Unit = &u
	}
	if r.Quantity != nil {
		q := domain.QuantityFromInput(string(*r.Quantity))
		p.Quantity = &q
	}
	if r.PricePerUnit != nil {
		v := domain.PriceFromInput(string(*r.PricePerUnit))
		p.PricePerUnit = &v
	}
	return p, nil
}

type moveItemReq struct {
	TargetID string `json:"target_id"`
}

type renameCategoryReq struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// projectView is a project together with every figure derived from it.
type projectView struct {
	Project    domain.RenovationProject  `json:"project"`
	Summary    aggregate.Summary         `json:"summary"`
	Categories []aggregate.CategoryGroup `json:"categories"`
	Breakdown  []aggregate.Share         `json:"breakdown"`
}

func viewOf(p domain.RenovationProject) projectView {
	return projectView{
		Project:    p,
		Summary:    aggregate.Summarize(p.Items),
		Categories: aggregate.Grouped(p.Items),
		Breakdown:  aggregate.Breakdown(p.Items),
	}
}

type mutationResp struct {
	OK      bool        `json:"ok"`
	Changed bool        `json:"changed"`
	ItemID  string      `json:"item_id,omitempty"`
	Merged  bool        `json:"merged,omitempty"`
	View    projectView `json:"view"`
}

func mutationOf(res mutate.Result) mutationResp {
	return mutationResp{
		OK:      true,
		Changed: res.Changed,
		ItemID:  res.ItemID,
		Merged:  res.Merged,
		View:    viewOf(res.Project),
	}
}
