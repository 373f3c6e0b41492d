package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/amirasaad/finance-tracker/infra/initializer"
	"github.com/amirasaad/finance-tracker/pkg/app"
	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/exchange"
	"github.com/amirasaad/finance-tracker/pkg/service/recurring"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  convert <amount> <from> <to>   convert an amount between currencies
  check-recurring                raise reminders for recurring transactions`

func main() {
	p := newPrinter(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
	if err := run(context.Background(), os.Args[1:], p); err != nil {
		p.Error(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, p *printer) error {
	if len(args) < 1 {
		p.Plain(usage)
		return nil
	}

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	switch args[0] {
	case "convert":
		conv, closeConv, err := initializer.NewConverter(cfg, initializer.SetupLogger(cfg.Log))
		if err != nil {
			return err
		}
		defer closeConv() //nolint:errcheck
		return convert(ctx, conv, args[1:], p)
	case "check-recurring":
		deps, closeDeps, err := initializer.InitializeDependencies(cfg)
		if err != nil {
			return err
		}
		defer closeDeps() //nolint:errcheck
		return checkRecurring(ctx, app.New(deps, cfg).RecurringService, p)
	default:
		p.Plain(usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func convert(ctx context.Context, conv exchange.Converter, args []string, p *printer) error {
	if len(args) != 3 {
		return errors.New("usage: convert <amount> <from> <to>")
	}
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}
	from, to := exchange.NormalizeCode(args[1]), exchange.NormalizeCode(args[2])

	converted, err := conv.ConvertAmount(ctx, amount, from, to)
	if err != nil {
		return err
	}
	p.Success(fmt.Sprintf("%s %s = %s %s", amount.StringFixed(2), from, converted.StringFixed(2), to))
	return nil
}

func checkRecurring(ctx context.Context, svc *recurring.Service, p *printer) error {
	res, err := svc.Check(ctx, time.Now())
	if err != nil {
		return err
	}
	p.Success(fmt.Sprintf("%d upcoming reminder(s) sent", res.Upcoming))
	if res.Missed > 0 {
		p.Warn(fmt.Sprintf("%d missed payment(s)", res.Missed))
	}
	return nil
}

// printer colors output only when writing to a terminal.
type printer struct {
	w       io.Writer
	success *color.Color
	warn    *color.Color
	err     *color.Color
}

func newPrinter(w io.Writer, tty bool) *printer {
	p := &printer{
		w:       w,
		success: color.New(color.FgGreen, color.Bold),
		warn:    color.New(color.FgYellow),
		err:     color.New(color.FgRed, color.Bold),
	}
	if !tty {
		p.success.DisableColor()
		p.warn.DisableColor()
		p.err.DisableColor()
	}
	return p
}

func (p *printer) Plain(msg string) {
	_, _ = fmt.Fprintln(p.w, msg)
}

func (p *printer) Success(msg string) {
	_, _ = p.success.Fprintln(p.w, msg)
}

func (p *printer) Warn(msg string) {
	_, _ = p.warn.Fprintln(p.w, msg)
}

func (p *printer) Error(err error) {
	_, _ = p.err.Fprintln(p.w, "Error:", err)
}
