package components

import (
	"context"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/robosave/robosave/internal/tui"
)

// ShowConfirm displays a Yes/No confirmation modal
func ShowConfirm(app *tui.App, title, message string, onYes, onNo func()) {
	if !strings.Contains(message, "[yellow]") {
		message = message + "\n\n[yellow]Use TAB or ←→ Arrows to switch | Press ENTER to select[white]"
	}

	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"Yes", "No"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if buttonLabel == "Yes" && onYes != nil {
				onYes()
			} else if onNo != nil {
				onNo()
			}
			app.Stop()
		})

	modal.SetBorder(true).
		SetTitle(" " + title + " ").
		SetTitleAlign(tview.AlignCenter).
		SetTitleColor(tui.AccentBlue).
		SetBorderColor(tui.AccentBlue).
		SetBackgroundColor(tcell.ColorBlack)

	app.SetRoot(modal, true).SetFocus(modal)
}

// RunConfirm runs a Yes/No modal to completion and returns the answer.
// Dismissing the dialog (Ctrl+C, aborted app) counts as No.
func RunConfirm(ctx context.Context, title, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	app := tui.NewApp()
	answer := false
	ShowConfirm(app, title, message, func() { answer = true }, nil)
	if err := app.Run(); err != nil {
		return false, err
	}
	return answer, nil
}

// RunSelect runs a modal with one button per option and returns the
// chosen index, or -1 when the dialog is dismissed without a choice.
func RunSelect(ctx context.Context, title, message string, options []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	app := tui.NewApp()
	choice := -1

	modal := tview.NewModal().
		SetText(message + "\n\n[yellow]Use TAB or ←→ Arrows to switch | Press ENTER to select[white]").
		AddButtons(options).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			choice = buttonIndex
			app.Stop()
		})

	modal.SetBorder(true).
		SetTitle(" " + title + " ").
		SetTitleAlign(tview.AlignCenter).
		SetTitleColor(tui.AccentBlue).
		SetBorderColor(tui.AccentBlue).
		SetBackgroundColor(tcell.ColorBlack)

	app.SetRoot(modal, true).SetFocus(modal)
	if err := app.Run(); err != nil {
		return -1, err
	}
	return choice, nil
}
