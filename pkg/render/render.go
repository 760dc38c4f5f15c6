package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matst80/slask-storefront/pkg/storefront"
	"github.com/matst80/slask-storefront/pkg/types"
)

var (
	Primary = lipgloss.Color("#101F38")
	Accent  = lipgloss.Color("#8BC34A")
	Muted   = lipgloss.Color("#7a8699")
	Sale    = lipgloss.Color("#e53935")
)

type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style
	Sale     lipgloss.Style
	Struck   lipgloss.Style
	Chip     lipgloss.Style
	Card     lipgloss.Style
	Row      lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Label:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(Muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Disabled: lipgloss.NewStyle().Faint(true),
		Sale:     lipgloss.NewStyle().Bold(true).Foreground(Sale),
		Struck:   lipgloss.NewStyle().Strikethrough(true).Foreground(Muted),
		Chip:     lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder()),
		Card:     lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()),
		Row:      lipgloss.NewStyle().PaddingLeft(1),
	}
}

// Renderer draws a storefront view for a terminal of the given width.
type Renderer struct {
	Styles  Styles
	Width   int
	Sidebar int
}

func NewRenderer(width int) *Renderer {
	if width < 60 {
		width = 60
	}
	return &Renderer{
		Styles:  DefaultStyles(),
		Width:   width,
		Sidebar: 26,
	}
}

func (r *Renderer) Render(v *storefront.View) string {
	var sb strings.Builder
	sb.WriteString(r.header(v))
	sb.WriteString("\n")
	if chips := r.chips(v); chips != "" {
		sb.WriteString(chips)
		sb.WriteString("\n")
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, r.sidebar(v), r.products(v)))
	sb.WriteString("\n")
	return sb.String()
}

func (r *Renderer) header(v *storefront.View) string {
	title := "All products"
	if v.Category != "" {
		title = v.Category.Label()
	}
	count := fmt.Sprintf("%d products", v.Total)
	if v.Total == 1 {
		count = "1 product"
	}
	return fmt.Sprintf("%s  %s  %s",
		r.Styles.Title.Render(title),
		r.Styles.Muted.Render(count),
		r.Styles.Muted.Render("Sort: "+v.Sort.Label),
	)
}

func (r *Renderer) chips(v *storefront.View) string {
	if len(v.Chips) == 0 {
		return ""
	}
	parts := make([]string, len(v.Chips))
	for i, c := range v.Chips {
		parts[i] = r.Styles.Chip.Render(c.Label + " ×")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (r *Renderer) sidebar(v *storefront.View) string {
	lines := make([]string, 0)
	for _, f := range v.Facets {
		lines = append(lines, r.Styles.Label.Render(f.Label))
		for _, value := range f.Values {
			label := value.Value
			if f.Dimension == types.CategoryFacet {
				label = types.Category(value.Value).Label()
			}
			line := fmt.Sprintf("[ ] %s (%d)", label, value.Count)
			switch {
			case value.Selected:
				line = r.Styles.Selected.Render(fmt.Sprintf("[x] %s (%d)", label, value.Count))
			case value.Disabled:
				line = r.Styles.Disabled.Render(line)
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}
	lines = append(lines, r.Styles.Label.Render("Price"))
	lines = append(lines, fmt.Sprintf("%s - %s",
		storefront.FormatPrice(v.Price.Selected.Min), storefront.FormatPrice(v.Price.Selected.Max)))
	return lipgloss.NewStyle().Width(r.Sidebar).Render(strings.Join(lines, "\n"))
}

func (r *Renderer) price(p *types.Product) string {
	if p.SalePrice != nil {
		return r.Styles.Sale.Render(storefront.FormatPrice(*p.SalePrice)) + " " + r.Styles.Struck.Render(storefront.FormatPrice(p.Price))
	}
	return storefront.FormatPrice(p.Price)
}

func (r *Renderer) stock(p *types.Product) string {
	if p.InStock {
		return "In stock"
	}
	return r.Styles.Muted.Render("Out of stock")
}

func (r *Renderer) products(v *storefront.View) string {
	if len(v.Items) == 0 {
		return r.Styles.Muted.Render("No products match the selected filters.")
	}
	if v.Layout == types.ListLayout {
		return r.list(v)
	}
	return r.grid(v)
}

func (r *Renderer) grid(v *storefront.View) string {
	cardWidth := 28
	columns := max(1, (r.Width-r.Sidebar)/(cardWidth+2))
	rows := make([]string, 0, len(v.Items)/columns+1)
	cards := make([]string, 0, columns)
	for i := range v.Items {
		p := &v.Items[i]
		card := strings.Join([]string{
			r.Styles.Label.Render(p.Name),
			r.Styles.Muted.Render(p.Brand),
			r.price(p),
			fmt.Sprintf("★ %.1f (%d)", p.Rating, p.Reviews),
			r.stock(p),
		}, "\n")
		cards = append(cards, r.Styles.Card.Width(cardWidth).Render(card))
		if len(cards) == columns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
			cards = cards[:0]
		}
	}
	if len(cards) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (r *Renderer) list(v *storefront.View) string {
	lines := make([]string, len(v.Items))
	for i := range v.Items {
		p := &v.Items[i]
		specs := make([]string, 0, 3)
		for _, s := range []string{p.Processor, p.Ram, p.Storage} {
			if s != "" {
				specs = append(specs, s)
			}
		}
		lines[i] = r.Styles.Row.Render(fmt.Sprintf("%s  %s  %s  %s  ★ %.1f  %s",
			r.Styles.Label.Render(p.Name),
			r.Styles.Muted.Render(p.Brand),
			strings.Join(specs, " / "),
			r.price(p),
			p.Rating,
			r.stock(p),
		))
	}
	return strings.Join(lines, "\n")
}
