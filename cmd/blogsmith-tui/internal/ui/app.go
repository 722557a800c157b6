// Package ui provides the terminal front-end for blogsmith.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iconidentify/blogsmith/internal/presenter"
)

const footerText = "[yellow]Enter[white]:Generate [yellow]Tab[white]:Switch focus [yellow]Ctrl-R[white]:Refresh topics [yellow]Ctrl-E[white]:Dismiss error [yellow]Ctrl-C[white]:Quit"

// App is the terminal application.
type App struct {
	app       *tview.Application
	presenter *presenter.Presenter
	provider  string
	ctx       context.Context
	cancel    context.CancelFunc

	// UI components
	header     *tview.TextView
	footer     *tview.TextView
	statusBar  *tview.TextView
	topicList  *tview.List
	sourceView *tview.TextView
	topicInput *tview.InputField
	resultView *tview.TextView

	focusables []tview.Primitive

	// topicItems holds the raw suggestion behind each list row.
	topicItems []string

	// lastTopic is the presenter topic last copied into the input field.
	lastTopic string
}

// NewApp creates the application around p. provider is shown in the header.
func NewApp(p *presenter.Presenter, provider string) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		app:       tview.NewApplication(),
		presenter: p,
		provider:  provider,
		ctx:       ctx,
		cancel:    cancel,
	}

	a.setupUI()
	p.OnChange(func(s presenter.State) {
		a.app.QueueUpdateDraw(func() { a.render(s) })
	})
	return a
}

func (a *App) setupUI() {
	a.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.header.SetBackgroundColor(tcell.ColorDarkBlue)
	a.header.SetText(fmt.Sprintf("\n[white::b]AI Blog Content Assistant[white] | Provider: [green]%s", tview.Escape(a.provider)))

	a.footer = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText(footerText)
	a.footer.SetBackgroundColor(tcell.ColorDarkBlue)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true)
	a.statusBar.SetBackgroundColor(tcell.ColorDarkGreen)

	a.topicList = tview.NewList().
		ShowSecondaryText(false).
		SetSelectedFunc(func(index int, _, _ string, _ rune) {
			if index < len(a.topicItems) {
				go a.selectTopic(a.topicItems[index])
			}
		})
	a.topicList.SetBorder(true).SetTitle(" Discover Trending Topics ")

	a.sourceView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)
	a.sourceView.SetBorder(true).SetTitle(" Sources ")

	a.topicInput = tview.NewInputField().
		SetLabel("Topic: ").
		SetPlaceholder("e.g. The Future of Renewable Energy, or pick a trending topic").
		SetFieldBackgroundColor(tcell.ColorDarkSlateGray).
		SetDoneFunc(func(key tcell.Key) {
			if key == tcell.KeyEnter {
				topic := a.topicInput.GetText()
				go a.presenter.Submit(a.ctx, topic)
			}
		})
	a.topicInput.SetBorder(true).SetTitle(" Enter Blog Post Topic ")

	a.resultView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true).
		SetScrollable(true)
	a.resultView.SetBorder(true).SetTitle(" Generated Content ")

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.topicList, 0, 2, false).
		AddItem(a.sourceView, 0, 1, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.topicInput, 3, 0, true).
		AddItem(a.resultView, 0, 1, false)

	body := tview.NewFlex().
		AddItem(left, 0, 1, false).
		AddItem(right, 0, 2, true)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.header, 3, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false).
		AddItem(a.footer, 1, 0, false)

	a.focusables = []tview.Primitive{a.topicInput, a.topicList, a.resultView}

	a.app.SetInputCapture(a.handleGlobalKeys)
	a.app.SetRoot(mainFlex, true).SetFocus(a.topicInput)
}

func (a *App) handleGlobalKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		a.cycleFocus(1)
		return nil
	case tcell.KeyBacktab:
		a.cycleFocus(-1)
		return nil
	case tcell.KeyCtrlR:
		go a.presenter.RefreshTopics(a.ctx)
		return nil
	case tcell.KeyCtrlE:
		go a.presenter.DismissContentError()
		return nil
	case tcell.KeyCtrlC:
		a.Stop()
		return nil
	}
	return event
}

func (a *App) cycleFocus(step int) {
	current := a.app.GetFocus()
	idx := 0
	for i, p := range a.focusables {
		if p == current {
			idx = i
			break
		}
	}
	next := (idx + step + len(a.focusables)) % len(a.focusables)
	a.app.SetFocus(a.focusables[next])
}

func (a *App) selectTopic(suggestion string) {
	if !a.presenter.SelectTopic(suggestion) {
		return
	}
	a.app.QueueUpdateDraw(func() { a.app.SetFocus(a.topicInput) })
}

// render redraws every component from s. It runs on the UI goroutine.
func (a *App) render(s presenter.State) {
	if s.Topic != a.lastTopic {
		a.lastTopic = s.Topic
		a.topicInput.SetText(s.Topic)
	}

	a.renderTopics(s)
	a.renderResult(s)
	a.statusBar.SetText(" " + statusLine(s))
}

func (a *App) renderTopics(s presenter.State) {
	current := a.topicList.GetCurrentItem()
	a.topicList.Clear()
	a.topicItems = a.topicItems[:0]
	if s.TopicsLoading {
		a.topicList.AddItem("[gray]Fetching latest trends, this may take a moment...", "", 0, nil)
		a.topicItems = append(a.topicItems, "")
	}
	for _, t := range s.Topics {
		label := tview.Escape(t)
		if !presenter.IsSelectable(t) {
			label = "[gray]" + label
		}
		a.topicList.AddItem(label, "", 0, nil)
		a.topicItems = append(a.topicItems, t)
	}
	if current < a.topicList.GetItemCount() {
		a.topicList.SetCurrentItem(current)
	}

	var b strings.Builder
	for _, src := range s.Sources {
		if !src.HasLink() {
			continue
		}
		fmt.Fprintf(&b, "[skyblue]%s[white]\n  %s\n", tview.Escape(src.Label()), tview.Escape(src.Web.URI))
	}
	a.sourceView.SetText(b.String())
}

func (a *App) renderResult(s presenter.State) {
	switch {
	case s.ContentLoading:
		a.resultView.SetText("[gray]Generating your blog content... this can take a moment.")
		return
	case s.ContentError != "":
		a.resultView.SetText(fmt.Sprintf("[red::b]Error[-:-:-]\n%s", tview.Escape(s.ContentError)))
		return
	case s.Content == nil:
		a.resultView.SetText("")
		return
	}

	c := s.Content
	var b strings.Builder
	b.WriteString("[green::b]Suggested Blog Titles[-:-:-]\n")
	for i, t := range c.Titles {
		fmt.Fprintf(&b, "  [skyblue]%d.[white] %s\n", i+1, tview.Escape(t))
	}
	b.WriteString("\n[green::b]SEO Meta Description[-:-:-]\n")
	b.WriteString(tview.Escape(c.MetaDescription) + "\n")
	b.WriteString("\n[green::b]Keywords / Tags[-:-:-]\n")
	b.WriteString(tview.Escape(strings.Join(c.Keywords, ", ")) + "\n")
	b.WriteString("\n[green::b]Draft Blog Content[-:-:-]\n")
	b.WriteString(tview.Escape(c.DraftContent) + "\n")
	b.WriteString("\n[green::b]Featured Image Prompt[-:-:-]\n")
	b.WriteString(tview.Escape(c.ImagePrompt) + "\n")

	a.resultView.SetText(b.String())
	a.resultView.ScrollToBeginning()
}

// statusLine summarizes loading and error flags for the status bar.
func statusLine(s presenter.State) string {
	var parts []string
	if s.TopicsLoading {
		parts = append(parts, "[yellow]Fetching topics...[white]")
	}
	if s.ContentLoading {
		parts = append(parts, "[yellow]Generating content...[white]")
	}
	if s.TopicsError != "" {
		parts = append(parts, "[red]Topics: "+tview.Escape(s.TopicsError)+"[white]")
	}
	if len(parts) == 0 {
		return "[green]Ready"
	}
	return strings.Join(parts, " | ")
}

// Run mounts the presenter and starts the event loop.
func (a *App) Run() error {
	go a.presenter.Mount(a.ctx)
	return a.app.Run()
}

// Stop cancels outstanding requests and stops the application.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
