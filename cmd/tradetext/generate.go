package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/vitos/trade_text_builder/internal/domain"
	"github.com/vitos/trade_text_builder/internal/infrastructure/clipboard"
	"github.com/vitos/trade_text_builder/internal/infrastructure/export"
	"github.com/vitos/trade_text_builder/internal/usecase"
	"go.uber.org/zap"
)

type generateArgs struct {
	Entry        string
	Direction    string
	Symbol       string
	RiskPct      float64
	Leverage     float64
	StopDistance float64
	OutDir       string
	Copy         bool
	Table        bool
}

func newGenerateCmd(a *app) *cobra.Command {
	args := &generateArgs{}

	cmd := &cobra.Command{
		Use:   "generate --entry 3543.5 [--direction SHORT]",
		Short: "Print the trade text for one entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := a.cfg.DomainSettings()
			if !cmd.Flags().Changed("symbol") {
				args.Symbol = settings.Symbol
			}
			if !cmd.Flags().Changed("risk") {
				args.RiskPct = settings.RiskPct
			}
			if !cmd.Flags().Changed("leverage") {
				args.Leverage = settings.Leverage
			}
			if !cmd.Flags().Changed("stop-distance") {
				args.StopDistance = settings.StopDistance
			}

			var exporter domain.TextExporter
			if cmd.Flags().Changed("out") {
				if args.OutDir == "" {
					args.OutDir = a.cfg.Export.Dir
				}
				exp, err := export.NewFileExporter(args.OutDir)
				if err != nil {
					return err
				}
				exporter = exp
			}
			var clip domain.Clipboard
			if args.Copy {
				clip = clipboard.NewSystemClipboard()
			}

			svc := usecase.NewTradeService(settings.Symbol, a.log)
			return runGenerate(cmd, svc, exporter, clip, args, a.log)
		},
	}

	cmd.Flags().StringVar(&args.Entry, "entry", "", "Entry price, e.g. 3543.5. Its decimals set the output precision.")
	cmd.Flags().StringVar(&args.Direction, "direction", string(domain.SideLong), "LONG or SHORT.")
	cmd.Flags().StringVar(&args.Symbol, "symbol", "", "Symbol (default from config).")
	cmd.Flags().Float64Var(&args.RiskPct, "risk", 0, "Risk per trade in percent (default from config).")
	cmd.Flags().Float64Var(&args.Leverage, "leverage", 0, "Leverage (default from config).")
	cmd.Flags().Float64Var(&args.StopDistance, "stop-distance", 0, "Stop distance in price units (default from config).")
	cmd.Flags().StringVar(&args.OutDir, "out", "", "Write {symbol}_{direction}_{entry}.txt into this directory.")
	cmd.Flags().BoolVar(&args.Copy, "copy", false, "Copy the headline to the clipboard.")
	cmd.Flags().BoolVar(&args.Table, "table", false, "Also print the levels as a table.")
	cmd.MarkFlagRequired("entry")

	return cmd
}

func runGenerate(cmd *cobra.Command, svc *usecase.TradeService, exporter domain.TextExporter, clip domain.Clipboard, args *generateArgs, log *zap.Logger) error {
	result, err := svc.Generate(cmd.Context(), usecase.TradeInput{
		Symbol:       args.Symbol,
		Direction:    args.Direction,
		Entry:        args.Entry,
		RiskPct:      args.RiskPct,
		Leverage:     args.Leverage,
		StopDistance: args.StopDistance,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printText(out, result.Text)
	if args.Table {
		fmt.Fprintln(out)
		printTable(out, result)
	}

	if exporter != nil {
		path, err := exporter.Export(cmd.Context(), result.Text)
		if err != nil {
			return err
		}
		log.Info("Trade text exported", zap.String("path", path))
		fmt.Fprintf(out, "\nSaved %s\n", path)
	}

	if clip != nil {
		if err := clip.Copy(result.Text.Headline); err != nil {
			log.Warn("Failed to copy headline", zap.Error(err))
		} else {
			fmt.Fprintln(out, "Headline copied to clipboard")
		}
	}

	return nil
}

func printText(w io.Writer, t *domain.TradeText) {
	fmt.Fprintln(w, t.Headline)
	fmt.Fprintln(w)
	fmt.Fprintln(w, t.ExtraInfo)
	fmt.Fprintln(w)
	fmt.Fprintln(w, t.TP1Update)
	fmt.Fprintln(w, t.TP2Update)
	fmt.Fprintln(w, t.TP3Update)
	fmt.Fprintln(w, t.SLUpdate)
	fmt.Fprintln(w, t.BreakEven)
}

func printTable(w io.Writer, res *usecase.TradeResult) {
	t := res.Text
	decs := res.Request.Decimals

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Level", "Price", "Move"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	move := func(price decimal.Decimal) string {
		return usecase.FormatFixed(price.Sub(res.Request.Entry), decs)
	}

	table.Append([]string{"Entry", t.Entry, ""})
	table.Append([]string{"SL", t.StopLoss, move(res.Levels.StopLoss)})
	table.Append([]string{"TP1", t.TP1, move(res.Levels.TakeProfit1)})
	table.Append([]string{"TP2", t.TP2, move(res.Levels.TakeProfit2)})
	table.Append([]string{"TP3", t.TP3, move(res.Levels.TakeProfit3)})
	table.SetFooter([]string{"Margin", usecase.FormatFixed(res.Levels.MarginPct, 0) + "%", ""})
	table.Render()
}
