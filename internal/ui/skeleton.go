package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"loadstate/internal/loading"
)

// Skeleton placeholders are shimmer-style blocks rendered in place of
// real content while it loads. Each renderer takes the available width
// and returns the placeholder markup.

// skeletonStyle is the muted fill used for every placeholder block.
var skeletonStyle = lipgloss.NewStyle().Foreground(ColorMuted)

// skeletonBox frames skeleton content the way cards are framed.
var skeletonBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorMuted).
	Padding(0, 1)

// shimmerLine renders a single placeholder line filling frac of width.
func shimmerLine(width int, frac float64) string {
	if width <= 0 {
		return ""
	}
	n := int(float64(width) * frac)
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return skeletonStyle.Render(strings.Repeat("▒", n))
}

// CardSkeleton renders a content-card placeholder: a short title line
// over two body lines, boxed.
func CardSkeleton(width int) string {
	inner := width - 4 // border + padding
	if inner < 8 {
		inner = 8
	}
	body := strings.Join([]string{
		shimmerLine(inner, 0.5),
		shimmerLine(inner, 1.0),
		shimmerLine(inner, 0.8),
	}, "\n")
	return skeletonBox.Render(body)
}

// ListRowSkeleton renders a single list-row placeholder: a leading
// avatar block and a text line.
func ListRowSkeleton(width int) string {
	inner := width - 4
	if inner < 8 {
		inner = 8
	}
	avatar := skeletonStyle.Render("▒▒")
	return avatar + " " + shimmerLine(inner-3, 0.7)
}

// BannerSkeleton renders a full-width hero-banner placeholder.
func BannerSkeleton(width int) string {
	inner := width - 4
	if inner < 8 {
		inner = 8
	}
	body := strings.Join([]string{
		shimmerLine(inner, 1.0),
		shimmerLine(inner, 1.0),
		shimmerLine(inner, 0.4),
	}, "\n")
	return skeletonBox.Render(body)
}

// RegisterDefaults installs the built-in skeleton renderers into a
// registry. The composition root owns the registry; nothing here is
// package-level state.
func RegisterDefaults(reg *loading.Registry) error {
	if err := reg.Register("card", CardSkeleton); err != nil {
		return err
	}
	if err := reg.Register("list-row", ListRowSkeleton); err != nil {
		return err
	}
	return reg.Register("banner", BannerSkeleton)
}
