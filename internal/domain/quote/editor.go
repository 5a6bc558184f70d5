package quote

import "errors"

var ErrUnknownField = errors.New("quote: unknown field")

// Editor holds live form state and re-renders after every change, so View
// never returns a half-updated result. It is not safe for concurrent use.
type Editor struct {
	fields RawFields
	rows   []editorRow
	nextID int
	view   View
}

type editorRow struct {
	id   int
	item RawItem
}

// NewEditor returns an editor in its reset state: default fields and one
// empty row.
func NewEditor() *Editor {
	e := &Editor{}
	e.Reset()
	return e
}

func (e *Editor) Reset() {
	e.fields = DefaultFields()
	e.rows = []editorRow{{id: e.newID()}}
	e.update()
}

// Load replaces the whole form state with raw.
func (e *Editor) Load(raw RawForm) {
	e.fields = raw.Fields
	e.rows = make([]editorRow, 0, len(raw.Items))
	for _, it := range raw.Items {
		e.rows = append(e.rows, editorRow{id: e.newID(), item: it})
	}
	e.update()
}

func (e *Editor) SetField(key string, value Text) error {
	if !e.fields.Set(key, value) {
		return ErrUnknownField
	}
	e.update()
	return nil
}

// AddRow appends a row and returns its id.
func (e *Editor) AddRow(item RawItem) int {
	id := e.newID()
	e.rows = append(e.rows, editorRow{id: id, item: item})
	e.update()
	return id
}

func (e *Editor) UpdateRow(id int, item RawItem) bool {
	i := e.index(id)
	if i < 0 {
		return false
	}
	e.rows[i].item = item
	e.update()
	return true
}

// RemoveRow deletes a row keeping the order of the others.
func (e *Editor) RemoveRow(id int) bool {
	i := e.index(id)
	if i < 0 {
		return false
	}
	e.rows = append(e.rows[:i], e.rows[i+1:]...)
	e.update()
	return true
}

// RowIDs lists row ids in display order.
func (e *Editor) RowIDs() []int {
	ids := make([]int, len(e.rows))
	for i, r := range e.rows {
		ids[i] = r.id
	}
	return ids
}

// Raw returns a copy of the current form state.
func (e *Editor) Raw() RawForm {
	items := make([]RawItem, len(e.rows))
	for i, r := range e.rows {
		items[i] = r.item
	}
	return RawForm{Fields: e.fields, Items: items}
}

func (e *Editor) View() View { return e.view }

func (e *Editor) update() { e.view = Build(e.Raw()) }

func (e *Editor) index(id int) int {
	for i, r := range e.rows {
		if r.id == id {
			return i
		}
	}
	return -1
}

func (e *Editor) newID() int {
	e.nextID++
	return e.nextID
}
