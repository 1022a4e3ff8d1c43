// Command holiday queries the holiday tools from the terminal.
//
// Usage:
//
//	holiday country NG --year 2025
//	holiday date --month 12 --day 25
//	holiday search christmas --country GB
//	holiday ask "Is today a holiday in Nigeria?"
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/briangreenhill/holidayagent/internal/agent"
	"github.com/briangreenhill/holidayagent/internal/app"
	"github.com/briangreenhill/holidayagent/internal/config"
	"github.com/briangreenhill/holidayagent/internal/logx"
	"github.com/briangreenhill/holidayagent/internal/tools"
)

// CLI defines the command-line interface.
type CLI struct {
	Countries CountriesCmd `cmd:"" help:"List supported countries."`
	Validate  ValidateCmd  `cmd:"" help:"Resolve a country name or code."`
	Country   CountryCmd   `cmd:"" help:"Holidays for one country and year."`
	Date      DateCmd      `cmd:"" help:"Holidays on a date across major countries."`
	Search    SearchCmd    `cmd:"" help:"Search holidays by name or description."`
	Today     TodayCmd     `cmd:"" help:"Holidays happening today."`
	Ask       AskCmd       `cmd:"" help:"Ask the holiday agent a question."`

	LogLevel string `help:"Log level (debug, info, warn, error)." default:"warn"`
}

// env is bound into every command's Run.
type env struct {
	ctx context.Context
	app *app.App
	out io.Writer
}

func (e *env) print(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type CountriesCmd struct {
	Search string `short:"s" help:"Filter by name or code."`
}

func (c *CountriesCmd) Run(e *env) error {
	out, err := e.app.Service.SupportedCountries(e.ctx, tools.SupportedInput{SearchQuery: c.Search})
	if err != nil {
		return err
	}
	return e.print(out)
}

type ValidateCmd struct {
	Input string `arg:"" help:"Country name or ISO code."`
}

func (c *ValidateCmd) Run(e *env) error {
	out, err := e.app.Service.ValidateCountry(e.ctx, tools.ValidateInput{Input: c.Input})
	if err != nil {
		return err
	}
	return e.print(out)
}

type CountryCmd struct {
	Code  string `arg:"" help:"Two-letter ISO country code."`
	Year  int    `short:"y" required:"" help:"Year to fetch."`
	Month int    `short:"m" help:"Optional month (1-12)."`
	Day   int    `short:"d" help:"Optional day (1-31)."`
	Type  string `short:"t" help:"Optional type: national, local, religious or observance."`
}

func (c *CountryCmd) Run(e *env) error {
	out, err := e.app.Service.HolidaysByCountry(e.ctx, tools.ByCountryInput{
		Country: c.Code,
		Year:    c.Year,
		Month:   nonZero(c.Month),
		Day:     nonZero(c.Day),
		Type:    nonZero(c.Type),
	})
	if err != nil {
		return err
	}
	return e.print(out)
}

type DateCmd struct {
	Month   int    `short:"m" required:"" help:"Month (1-12)."`
	Day     int    `short:"d" required:"" help:"Day (1-31)."`
	Year    int    `short:"y" help:"Year; defaults to the current year."`
	Country string `short:"c" help:"Only check this country."`
}

func (c *DateCmd) Run(e *env) error {
	out, err := e.app.Service.HolidaysForDate(e.ctx, tools.ForDateInput{
		Month:   c.Month,
		Day:     c.Day,
		Year:    nonZero(c.Year),
		Country: nonZero(c.Country),
	})
	if err != nil {
		return err
	}
	return e.print(out)
}

type SearchCmd struct {
	Term    string `arg:"" help:"Holiday name or keyword."`
	Year    int    `short:"y" help:"Year; defaults to the current year."`
	Country string `short:"c" help:"Only search this country."`
	Type    string `short:"t" help:"Optional type filter."`
}

func (c *SearchCmd) Run(e *env) error {
	out, err := e.app.Service.SearchHolidays(e.ctx, tools.SearchInput{
		SearchTerm: c.Term,
		Year:       nonZero(c.Year),
		Country:    nonZero(c.Country),
		Type:       nonZero(c.Type),
	})
	if err != nil {
		return err
	}
	return e.print(out)
}

type TodayCmd struct {
	Country string `short:"c" help:"Only check this country."`
}

func (c *TodayCmd) Run(e *env) error {
	out, err := e.app.Service.TodayHolidays(e.ctx, tools.TodayInput{Country: nonZero(c.Country)})
	if err != nil {
		return err
	}
	return e.print(out)
}

type AskCmd struct {
	Prompt []string `arg:"" help:"Question for the agent."`
}

func (c *AskCmd) Run(e *env) error {
	resp, err := agent.Ask(e.ctx, e.app.Agent, strings.Join(c.Prompt, " "))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, resp.Text)
	return err
}

func nonZero[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

// run parses args and executes the selected command, writing results to out.
func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("holiday"),
		kong.Description("Look up public holidays from 230+ countries."),
		kong.UsageOnError(),
		kong.Writers(out, errOut),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logx.NewWithWriter(errOut, cli.LogLevel)
	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	return kctx.Run(&env{ctx: ctx, app: a, out: out})
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "holiday:", err)
		os.Exit(1)
	}
}
