package models

// DayView aggregates everything recorded for one calendar date.
// Date uses the yyyy-MM-dd key format.
type DayView struct {
	Date         string        `json:"date"`
	Achievements []Achievement `json:"achievements"`
	Todos        []Todo        `json:"todos"`
}

func (d *DayView) Achievement(id int) *Achievement {
	for i := range d.Achievements {
		if d.Achievements[i].ID == id {
			return &d.Achievements[i]
		}
	}
	return nil
}

func (d *DayView) Todo(id int) *Todo {
	for i := range d.Todos {
		if d.Todos[i].ID == id {
			return &d.Todos[i]
		}
	}
	return nil
}
