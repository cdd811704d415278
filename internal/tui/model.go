package tui

import (
	"fmt"
	"os"
	"strings"

	"exifmgr/internal/domain"
	"exifmgr/internal/gps"
	"exifmgr/internal/tags"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseScanning Phase = iota
	PhaseDone
	PhaseError
)

// Messages for the TUI
type (
	ScanProgressMsg struct {
		Current int
		Total   int
	}
	ScanDoneMsg struct {
		Result domain.ScanResult
	}
	ErrorMsg struct {
		Err error
	}
)

// Config for the TUI
type Config struct {
	Root     string
	Verbose  bool
	MaxItems int
}

// Model shows scan progress and then the per-file results.
type Model struct {
	config      Config
	Phase       Phase
	Result      domain.ScanResult
	spinner     spinner.Model
	progress    progress.Model
	scanCurrent int
	scanTotal   int
	Err         error
	Quitting    bool
	width       int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 8
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseScanning,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "enter":
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case ScanProgressMsg:
		m.scanCurrent = msg.Current
		m.scanTotal = msg.Total
		return m, nil

	case ScanDoneMsg:
		m.Result = msg.Result
		m.Phase = PhaseDone
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseScanning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseScanning:
		b.WriteString(m.renderScanning())
	case PhaseDone:
		b.WriteString(m.renderResults())
		b.WriteString("\n")
		b.WriteString(m.renderSummary())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("exifmgr")
	subtitle := subtitleStyle.Render("Image metadata via exiftool")
	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Root: %s", iconFolder, shortenPath(m.config.Root))),
	)
}

func (m Model) renderScanning() string {
	if m.scanTotal == 0 {
		return fmt.Sprintf("%s Looking for images...", m.spinner.View())
	}
	percent := float64(m.scanCurrent) / float64(m.scanTotal)
	countStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	percentStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	return fmt.Sprintf("%s Reading metadata...\n\n  %s\n  %s %s",
		m.spinner.View(),
		m.progress.ViewAs(percent),
		countStyle.Render(fmt.Sprintf("%d/%d", m.scanCurrent, m.scanTotal)),
		percentStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	)
}

func (m Model) renderResults() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Files"))
	b.WriteString("\n\n")

	if len(m.Result.Items) == 0 {
		dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)
		b.WriteString(dimStyle.Render("  No images found"))
		b.WriteString("\n")
		return b.String()
	}

	for _, line := range formatItemList(m.Result.Items, m.config.MaxItems) {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n\n")

	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Images read:"), statValueStyle.Render(fmt.Sprintf("%s %d", iconImage, len(m.Result.Items)))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("With GPS:"), gpsStyle.Render(fmt.Sprintf("%s %d", iconGPS, m.Result.WithGPS))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Other files:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, m.Result.Skipped))))
	if m.Result.Failed > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Failed:"), warningStyle.Render(fmt.Sprintf("%s %d", iconWarning, m.Result.Failed))))
	} else {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", successStyle.Render(iconSuccess), successStyle.Render("All files read")))
	}

	if m.config.Verbose && m.Result.Failed > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Errors:"))
		b.WriteString("\n")
		for _, item := range m.Result.Items {
			if item.Err != nil {
				b.WriteString(fmt.Sprintf("  %s %s: %v\n", iconWarning, item.FileMeta.RelativePath, item.Err))
			}
		}
	}
	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", m.Err.Error()))

	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseScanning:
		help = "Press q to quit"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

// formatItemList shows the first and last items when there are more than maxItems.
func formatItemList(items []domain.ScanItem, maxItems int) []string {
	if len(items) <= maxItems {
		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, formatItem(item))
		}
		return lines
	}

	half := maxItems / 2
	lines := make([]string, 0, maxItems+1)
	for i := 0; i < half; i++ {
		lines = append(lines, formatItem(items[i]))
	}
	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)
	lines = append(lines, dimStyle.Render(fmt.Sprintf("... %d more files ...", len(items)-2*half)))
	for i := len(items) - half; i < len(items); i++ {
		lines = append(lines, formatItem(items[i]))
	}
	return lines
}

func formatItem(item domain.ScanItem) string {
	name := fileNameStyle.Render(item.FileMeta.RelativePath)
	if item.Err != nil {
		return fmt.Sprintf("%s %s  %s", errorStyle.Render(iconError), name, errorStyle.Render(item.Err.Error()))
	}

	parts := make([]string, 0, len(item.Values))
	for _, t := range item.Values.Tags() {
		if item.Coordinate != nil && (t == tags.GPSLatitude || t == tags.GPSLongitude) {
			continue
		}
		parts = append(parts, valueStyle.Render(item.Values[t]))
	}
	if item.Coordinate != nil {
		parts = append(parts, gpsStyle.Render(fmt.Sprintf("%s %s, %s", iconGPS,
			gps.FormatDecimal(item.Coordinate.Lat), gps.FormatDecimal(item.Coordinate.Lng))))
	}
	return fmt.Sprintf("%s %s  %s", iconImage, name, strings.Join(parts, "  "))
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
