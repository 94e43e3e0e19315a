// Package taskpanel is the task list beside the timer.
package taskpanel

import (
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"littlepomo/internal/tasks"
)

// Store is the subset of the task store the panel drives.
type Store interface {
	Add(text string) (tasks.Task, error)
	Delete(id string) error
	ToggleDone(id string) (tasks.Task, error)
	SetActive(id string) error
	List() ([]tasks.Task, error)
}

// Panel lists tasks and edits them. All methods run on the fyne goroutine.
type Panel struct {
	store    Store
	logger   *slog.Logger
	items    []tasks.Task
	list     *widget.List
	input    *widget.Entry
	count    *widget.Label
	content  fyne.CanvasObject
	onActive func(task tasks.Task, ok bool)
}

// New builds the panel and loads the current list.
func New(store Store, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	panel := &Panel{
		store:  store,
		logger: logger.With("component", "taskpanel"),
		input:  widget.NewEntry(),
		count:  widget.NewLabel(""),
	}

	panel.input.SetPlaceHolder("What are you working on?")
	panel.input.OnSubmitted = func(string) { panel.add() }
	addButton := widget.NewButtonWithIcon("", theme.ContentAddIcon(), panel.add)

	panel.list = widget.NewList(
		func() int { return len(panel.items) },
		panel.createRow,
		panel.updateRow,
	)
	panel.list.OnSelected = func(index widget.ListItemID) {
		panel.list.Unselect(index)
		if index >= 0 && index < len(panel.items) {
			panel.setActive(panel.items[index].ID)
		}
	}

	header := container.NewHBox(
		widget.NewLabelWithStyle("Tasks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		panel.count,
	)
	inputRow := container.NewBorder(nil, nil, nil, addButton, panel.input)
	panel.content = container.NewBorder(container.NewVBox(header, inputRow), nil, nil, nil, panel.list)

	panel.Reload()
	return panel
}

// Content returns the panel's root object.
func (panel *Panel) Content() fyne.CanvasObject {
	return panel.content
}

// SetOnActiveChanged registers a handler for active task changes.
func (panel *Panel) SetOnActiveChanged(handler func(task tasks.Task, ok bool)) {
	panel.onActive = handler
}

// Reload re-reads the list from the store.
func (panel *Panel) Reload() {
	items, err := panel.store.List()
	if err != nil {
		panel.logger.Error("load tasks failed", "error", err)
		return
	}
	panel.items = items
	panel.count.SetText(CountLabel(len(items)))
	panel.list.Refresh()

	if panel.onActive != nil {
		task, ok := activeTask(items)
		panel.onActive(task, ok)
	}
}

func (panel *Panel) add() {
	_, err := panel.store.Add(panel.input.Text)
	if errors.Is(err, tasks.ErrEmptyText) {
		return
	}
	if err != nil {
		panel.logger.Error("add task failed", "error", err)
		return
	}
	panel.input.SetText("")
	panel.Reload()
}

func (panel *Panel) setActive(id string) {
	if err := panel.store.SetActive(id); err != nil {
		panel.logger.Error("select task failed", "id", id, "error", err)
		return
	}
	panel.Reload()
}

func (panel *Panel) toggleDone(id string) {
	if _, err := panel.store.ToggleDone(id); err != nil {
		panel.logger.Error("toggle task failed", "id", id, "error", err)
		return
	}
	panel.Reload()
}

func (panel *Panel) remove(id string) {
	if err := panel.store.Delete(id); err != nil {
		panel.logger.Error("delete task failed", "id", id, "error", err)
		return
	}
	panel.Reload()
}

func (panel *Panel) createRow() fyne.CanvasObject {
	check := widget.NewCheck("", nil)
	label := widget.NewLabel("")
	label.Truncation = fyne.TextTruncateEllipsis
	deleteButton := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
	deleteButton.Importance = widget.LowImportance
	return container.NewBorder(nil, nil, check, deleteButton, label)
}

func (panel *Panel) updateRow(index widget.ListItemID, object fyne.CanvasObject) {
	if index < 0 || index >= len(panel.items) {
		return
	}
	task := panel.items[index]
	row := object.(*fyne.Container)

	// Border puts the centre object first, then the edges in argument order.
	label := row.Objects[0].(*widget.Label)
	check := row.Objects[1].(*widget.Check)
	deleteButton := row.Objects[2].(*widget.Button)

	check.OnChanged = nil
	check.SetChecked(task.Done)
	check.OnChanged = func(bool) { panel.toggleDone(task.ID) }

	label.SetText(RowText(task))
	label.TextStyle = fyne.TextStyle{Bold: task.Active}
	label.Refresh()

	deleteButton.OnTapped = func() { panel.remove(task.ID) }
}

// RowText is the label shown for a task.
func RowText(task tasks.Task) string {
	text := task.Text
	if task.Done {
		text = "✓ " + text
	}
	if task.Pomos > 0 {
		text = fmt.Sprintf("%s  🍅 %d", text, task.Pomos)
	}
	return text
}

// CountLabel is the header count, e.g. "1 task" or "3 tasks".
func CountLabel(total int) string {
	if total == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", total)
}

func activeTask(items []tasks.Task) (tasks.Task, bool) {
	for _, task := range items {
		if task.Active {
			return task, true
		}
	}
	return tasks.Task{}, false
}
