package templates

import "github.com/7svn/smeta-backend/internal/estimates/domain"

const (
	catRough    = "1. Черновые работы"
	catElectric = "2. Электрика"
	catHeating  = "3. Отопление"
	catWater    = "4. Водоснабжение"
	catPlaster  = "5. Штукатурные работы"
	catScreed   = "6. Стяжка пола"
	catDrywall  = "7. Гипсокартон"
	catTile     = "8. Плитка 60*120"
	catFlooring = "9. Укладка напольного покрытия"
	catPainting = "10. Малярные работы"
	catFinal    = "Итоги"
)

func line(category, name string, unit domain.Unit, price float64) Line {
	return Line{Category: category, Name: name, Unit: unit, PricePerUnit: price}
}

var professional = Template{
	ID:          ProfessionalID,
	Name:        "Профессиональный стандарт 2024",
	Description: "Детальная смета по вашему списку работ.",
	Icon:        "Hammer",
	Lines: []Line{
		line(catRough, "Демонтаж, уборка, вынос мусора", domain.UnitSquareMeter, 27000),
		line(catRough, "Подготовка объекта к работам", domain.UnitPiece, 13500),
		line(catRough, "Гидро, шумоизоляция пола", domain.UnitSquareMeter, 945),
		line(catRough, "Разметка помещений", domain.UnitPiece, 6750),
		line(catRough, "Кладка перегородок", domain.UnitSquareMeter, 1755),
		line(catRough, "Устройство проемов", domain.UnitPiece, 4050),
		line(catRough, "Шумоизоляция стояков", domain.UnitPiece, 6750),

		line(catElectric, "точки электро", domain.UnitPiece, 540),
		line(catElectric, "точки короновка", domain.UnitPiece, 810),
		line(catElectric, "Пересборка щита (Д)", domain.UnitPiece, 10800),
		line(catElectric, "коробки распаячные", domain.UnitPiece, 945),
		line(catElectric, "гофра прокладка", domain.UnitLinearMeter, 135),
		line(catElectric, "Теплый пол устройство", domain.UnitPiece, 10800),
		line(catElectric, "Установка роз и вык", domain.UnitPiece, 540),
		line(catElectric, "Установка люстр, бр", domain.UnitPiece, 1620),
		line(catElectric, "Монтаж ленты свет", domain.UnitLinearMeter, 1350),
		line(catElectric, "Разное", domain.UnitPiece, 13500),
		line(catElectric, "Штроба", domain.UnitLinearMeter, 810),
		line(catElectric, "Установка карнизов", domain.UnitPiece, 0),

		line(catHeating, "установка радиаторов", domain.UnitPiece, 4050),
		line(catHeating, "установка конвекторов", domain.UnitPiece, 6750),
		line(catHeating, "Щиток + гребенка", domain.UnitPiece, 13500),
		line(catHeating, "Коллектор (ветка)", domain.UnitBranch, 8100),
		line(catHeating, "Система водоотведения", domain.UnitPoint, 3375),
		line(catHeating, "Штробы", domain.UnitLinearMeter, 1350),

		line(catWater, "Подвода воды", domain.UnitPoint, 4725),
		line(catWater, "Защита от протечек, нептун", domain.UnitPiece, 10800),
		line(catWater, "Коллекторный узел (груб фильтр)", domain.UnitPiece, 20250),
		line(catWater, "Водонагреватель установка", domain.UnitPiece, 6750),
		line(catWater, "Инсталляция установка", domain.UnitPiece, 10800),
		line(catWater, "Установка смесителей душ, раковина", domain.UnitPiece, 47250),
		line(catWater, "Установка унитаза и кнопки", domain.UnitPiece, 6750),
		line(catWater, "Установка принадлежностей", domain.UnitPiece, 6750),

		line(catPlaster, "стены", domain.UnitSquareMeter, 1012.5),
		line(catPlaster, "откосы", domain.UnitLinearMeter, 1350),
		line(catPlaster, "углы под 90", domain.UnitLinearMeter, 607.5),

		line(catScreed, "стяжка", domain.UnitLinearMeter, 945),
		line(catScreed, "фибра", domain.UnitPiece, 6750),
		line(catScreed, "укрытие пленкой/проклейка", domain.UnitSquareMeter, 270),
		line(catScreed, "Срез демпфера, уборка", domain.UnitPiece, 9450),

		line(catDrywall, "Короба инсталляции", domain.UnitPiece, 10800),
		line(catDrywall, "Перегородки", domain.UnitSquareMeter, 1620),
		line(catDrywall, "Потолки", domain.UnitSquareMeter, 3375),
		line(catDrywall, "Ниши", domain.UnitLinearMeter, 3375),
		line(catDrywall, "Закладные под мебель", domain.UnitLinearMeter, 1000),
		line(catDrywall, "Установка лючка скрытого", domain.UnitPiece, 6075),

		line(catTile, "Укладка", domain.UnitSquareMeter, 4725),
		line(catTile, "Запил углов", domain.UnitLinearMeter, 1350),
		line(catTile, "Затирка цементная", domain.UnitSquareMeter, 675),
		line(catTile, "Отверстия", domain.UnitPiece, 945),
		line(catTile, "Ниши, короба", domain.UnitPiece, 27000),
		line(catTile, "Устройство ванны/трапа", domain.UnitPiece, 13500),
		line(catTile, "Гидроизоляция пола", domain.UnitSquareMeter, 675),
		line(catTile, "Кухонный фартук", domain.UnitLinearMeter, 6750),

		line(catFlooring, "Ламинат", domain.UnitSquareMeter, 675),
		line(catFlooring, "Плинтус полиуретан", domain.UnitLinearMeter, 1620),
		line(catFlooring, "Теневой плинтус", domain.UnitLinearMeter, 4050),
		line(catFlooring, "Пороги и стыки", domain.UnitLinearMeter, 810),

		line(catPainting, "Потолок", domain.UnitSquareMeter, 2700),
		line(catPainting, "Стены", domain.UnitSquareMeter, 2160),
		line(catPainting, "Потолочные багеты", domain.UnitLinearMeter, 2700),
		line(catPainting, "Молдинги", domain.UnitLinearMeter, 2025),
		line(catPainting, "Укрытие стен и др.", domain.UnitPiece, 10800),

		line(catFinal, "Уборка перед сдачей", domain.UnitPiece, 13500),
		line(catFinal, "Установка межкомнатных дверей", domain.UnitPiece, 12150),
		line(catFinal, "Неучтенные работы", domain.UnitPiece, 33750),
	},
}
