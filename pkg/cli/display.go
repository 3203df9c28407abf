package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/playbell/pkg/domain/model"
)

// Printer writes human readable status lines
type Printer struct {
	w     io.Writer
	ok    *color.Color
	ng    *color.Color
	label *color.Color
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:     w,
		ok:    color.New(color.FgGreen, color.Bold),
		ng:    color.New(color.FgRed, color.Bold),
		label: color.New(color.FgCyan),
	}
}

// Outcome prints the result of a delivery
func (p *Printer) Outcome(cfg *model.Config, outcome model.Outcome) {
	if outcome.Delivered() {
		p.ok.Fprint(p.w, "✓ ")
		fmt.Fprintf(p.w, "Message sent to %s\n", cfg.Channel)
		return
	}

	p.ng.Fprint(p.w, "✗ ")
	fmt.Fprintf(p.w, "Could not submit message to %s: %v\n", cfg.Channel, outcome.Reason())
}

// Config prints the resolved configuration with the token masked
func (p *Printer) Config(cfg *model.Config) {
	p.line("Status", p.status(cfg))
	p.line("Token", valueOr(cfg.MaskedToken(), "(not set)"))
	p.line("Channel", cfg.Channel)
	p.line("Username", cfg.SenderName())
	p.line("Notify", fmt.Sprintf("%t", cfg.AllowNotify))
}

func (p *Printer) status(cfg *model.Config) string {
	if cfg.Enabled() {
		return p.ok.Sprint("enabled")
	}
	return p.ng.Sprint("disabled")
}

func (p *Printer) line(name, value string) {
	p.label.Fprintf(p.w, "%-9s", name+":")
	fmt.Fprintf(p.w, " %s\n", value)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
