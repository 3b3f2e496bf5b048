// Package runplan renders the run plan shown before the gate opens and the
// run history table.
package runplan

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/seckill-cli/internal/application"
	"github.com/bnema/seckill-cli/internal/domain"
)

type RenderOptions struct {
	Now time.Time
}

func RenderPlan(plan application.RunPlan, opts RenderOptions) (string, error) {
	return run(func(s styles) string { return planView(plan, opts, s) })
}

func RenderHistory(runs []domain.RunRecord, opts RenderOptions) (string, error) {
	return run(func(s styles) string { return historyView(runs, opts, s) })
}

// RenderRun renders a single recorded run with its full ID.
func RenderRun(r domain.RunRecord, opts RenderOptions) (string, error) {
	return run(func(s styles) string { return runView(r, opts, s) })
}

func planView(plan application.RunPlan, opts RenderOptions, s styles) string {
	t := plan.Template
	invoice := "none"
	if t.WithInvoice {
		invoice = fmt.Sprintf("title %s, content %s", t.Invoice.Title, t.Invoice.ContentType)
	}

	lines := []string{
		s.title.Render("Flash sale run"),
		s.header.Render("run: " + plan.ID),
		s.section.Render(field(s, "item", fmt.Sprintf("%s x%d", plan.Item.SKU, plan.Item.Quantity))),
		field(s, "workers", fmt.Sprintf("%d", plan.Workers)),
		targetLine(plan.Target, opts.Now, s),
		s.section.Render(field(s, "ship to", fmt.Sprintf("%s (%s)", t.Address.Name, t.MaskedMobile()))),
		field(s, "address", t.Address.ID),
		field(s, "invoice", invoice),
		field(s, "payment", paymentLabel(t.PaymentType)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(s styles, key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(key+":"), " ", s.detail.Render(value))
}

func targetLine(target domain.ScheduledInstant, now time.Time, s styles) string {
	line := field(s, "target", target.At.Format("2006-01-02 15:04:05 MST"))
	if now.IsZero() {
		return line
	}

	style := lipgloss.NewStyle().Foreground(countdownColor(target.Remaining(now)))
	return line + " " + style.Render("("+formatCountdown(target, now)+")")
}

func paymentLabel(paymentType string) string {
	if paymentType == domain.PaymentTypeOnline {
		return "online"
	}
	return paymentType
}

func historyView(runs []domain.RunRecord, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Run history"),
		s.header.Render(fmt.Sprintf("runs: %d", len(runs))),
	}

	if len(runs) == 0 {
		lines = append(lines, s.empty.Render("No runs recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	acquired := 0
	for _, r := range runs {
		if r.Status == domain.RunStatusAcquired {
			acquired++
		}
	}
	ratio := 100 * float64(acquired) / float64(len(runs))
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
		s.detail.Render("acquired:"), " ",
		renderProgressBar(ratio, 20, s), " ",
		s.detail.Render(fmt.Sprintf("%d/%d", acquired, len(runs))),
	))

	for _, r := range runs {
		lines = append(lines, s.section.Render(runEntry(r, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func runView(r domain.RunRecord, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Run " + r.ID),
		s.section.Render(runEntry(r, opts, s)),
	}
	if !r.Target.IsZero() {
		lines = append(lines, field(s, "target", r.Target.Format("2006-01-02 15:04:05 MST")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func runEntry(r domain.RunRecord, opts RenderOptions, s styles) string {
	status := s.muted.Render(string(r.Status))
	switch r.Status {
	case domain.RunStatusAcquired:
		status = s.success.Render(string(r.Status))
	case domain.RunStatusAborted:
		status = s.warning.Render(string(r.Status))
	}

	head := lipgloss.JoinHorizontal(lipgloss.Top,
		s.title.Render(shortID(r.ID)), " ",
		status, " ",
		s.muted.Render(formatStarted(r.StartedAt, opts.Now)),
	)

	parts := []string{
		head,
		s.detail.Render(fmt.Sprintf("item %s x%d, %d workers, %d attempts, %s",
			r.Item.SKU, r.Item.Quantity, r.Workers, r.Attempts, formatDuration(r.FinishedAt.Sub(r.StartedAt)))),
	}
	for _, link := range r.PurchaseURLs {
		parts = append(parts, s.success.Render("pay: "+link))
	}
	if r.Error != "" {
		parts = append(parts, s.warning.Render("error: "+r.Error))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100.0))
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", width-filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatCountdown(target domain.ScheduledInstant, now time.Time) string {
	if target.Reached(now) {
		return "now"
	}

	remaining := target.Remaining(now)
	switch {
	case remaining < time.Minute:
		return fmt.Sprintf("in %ds", int(math.Ceil(remaining.Seconds())))
	case remaining < time.Hour:
		return fmt.Sprintf("in %dm%02ds", int(remaining.Minutes()), int(remaining.Seconds())%60)
	default:
		return fmt.Sprintf("in %dh%02dm", int(remaining.Hours()), int(remaining.Minutes())%60)
	}
}

func formatStarted(started, now time.Time) string {
	if started.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return started.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := started.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return started.Format("15:04:05")
	}

	return started.Format("15:04 on 02 Jan")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(time.Second).String()
}

// countdownColor brightens from grey to white as the target approaches.
func countdownColor(remaining time.Duration) lipgloss.Color {
	const horizon = time.Hour
	inverted := horizon.Seconds() - remaining.Seconds()
	return interpolateColor(inverted, 0, horizon.Seconds())
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp, 240 faded to 255 bright.
	colorCode := int(240.0 + 15.0*normalized)
	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
