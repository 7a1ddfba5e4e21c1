package cli

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/tsvetanka/ERP-Billing/internal/application/billing"
)

var _ billing.ProgressTracker = (*progressBar)(nil)

// progressBar barra de clientes procesados en stderr.
type progressBar struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func newProgressBar(out io.Writer) *progressBar {
	return &progressBar{out: out}
}

func (p *progressBar) Start(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription("facturando"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *progressBar) Advance() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *progressBar) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
