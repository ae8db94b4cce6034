package components

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/robosave/robosave/internal/tui"
)

// PickDirectory opens a modal directory browser starting at startDir
// and returns the chosen path. ok is false when the user dismisses the
// dialog without selecting anything (ESC).
func PickDirectory(ctx context.Context, title, startDir string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if startDir == "" {
		startDir = string(filepath.Separator)
	}

	app := tui.NewApp()
	current := startDir
	selected := ""

	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true).
		SetTitleAlign(tview.AlignCenter).
		SetTitleColor(tui.AccentBlue).
		SetBorderColor(tui.AccentBlue).
		SetBackgroundColor(tcell.ColorBlack)

	var populate func(dir string)
	populate = func(dir string) {
		current = dir
		list.Clear()
		list.SetTitle(" " + title + ": " + current + " ")

		list.AddItem(tui.SymbolSelected+" Use this folder", "", 'u', func() {
			selected = current
			app.Stop()
		})
		if parent := filepath.Dir(current); parent != current {
			list.AddItem("..", "", 0, func() {
				populate(parent)
			})
		}
		for _, name := range subdirNames(current) {
			child := filepath.Join(current, name)
			list.AddItem(tui.SymbolFolder+" "+name, "", 0, func() {
				populate(child)
			})
		}
	}
	populate(current)

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			selected = ""
			app.Stop()
			return nil
		}
		return event
	})

	app.SetRoot(list, true).SetFocus(list)
	if err := app.Run(); err != nil {
		return "", false, err
	}
	if selected == "" {
		return "", false, nil
	}
	return selected, true, nil
}

// subdirNames lists the readable subdirectories of dir, sorted. Errors
// degrade to an empty listing; the picker stays usable.
func subdirNames(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}
