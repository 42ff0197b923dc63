package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/govalues/ratio"
	"github.com/govalues/ratio/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ratioconv",
		Short:        "Convert token amounts with integer ratios and fees",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("rate", "", "derived units per base unit (e.g. 3/2 or 1.5)")
	root.PersistentFlags().String("fee", "", "fee charged in base units (e.g. 1/100, 0.003, 30bps)")
	root.PersistentFlags().String("round", "", "rounding direction (down, up)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "conv <amount>",
		Short: "Convert a base amount to the derived unit, fee deducted first",
		Args:  cobra.ExactArgs(1),
		RunE:  runConv,
	})
	root.AddCommand(&cobra.Command{
		Use:   "inv <amount>",
		Short: "Convert a derived amount back to the base unit, fee deducted last",
		Args:  cobra.ExactArgs(1),
		RunE:  runInv,
	})
	root.AddCommand(&cobra.Command{
		Use:   "fee <amount>",
		Short: "Split an amount into the fee and the amount after fee",
		Args:  cobra.ExactArgs(1),
		RunE:  runFee,
	})
	root.AddCommand(&cobra.Command{
		Use:   "reverse <amount>",
		Short: "Print the range of base amounts the rate maps to the given amount",
		Args:  cobra.ExactArgs(1),
		RunE:  runReverse,
	})

	return root
}

type env struct {
	conv   ratio.Converter
	mode   ratio.RoundingMode
	amount uint64
	logger *zap.Logger
}

func setup(cmd *cobra.Command, args []string) (*env, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	conv, err := cfg.Converter()
	if err != nil {
		logger.Error("invalid parameters", zap.Error(err))
		return nil, err
	}
	mode, err := cfg.Mode()
	if err != nil {
		logger.Error("invalid parameters", zap.Error(err))
		return nil, err
	}
	amount, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		logger.Error("invalid amount", zap.String("amount", args[0]), zap.Error(err))
		return nil, fmt.Errorf("parse amount: %w", err)
	}

	logger.Debug("parameters",
		zap.Stringer("rate", conv.Rate()),
		zap.Stringer("fee", conv.Fee()),
		zap.Stringer("round", mode),
		zap.Uint64("amount", amount),
	)

	return &env{conv: conv, mode: mode, amount: amount, logger: logger}, nil
}

func runConv(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	q, err := e.conv.Conv(e.amount, e.mode)
	if err != nil {
		e.logger.Error("conversion failed", zap.Error(err))
		return err
	}
	e.logger.Info("converted", quoteFields(q)...)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "in=%d fee=%d out=%d\n", q.In, q.Fee, q.Out)
	return err
}

func runInv(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	q, err := e.conv.ConvInv(e.amount, e.mode)
	if err != nil {
		e.logger.Error("inverse conversion failed", zap.Error(err))
		return err
	}
	e.logger.Info("converted back", quoteFields(q)...)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "in=%d fee=%d out=%d\n", q.In, q.Fee, q.Out)
	return err
}

func runFee(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	c, err := e.conv.Fee().Split(e.amount, e.mode)
	if err != nil {
		e.logger.Error("fee computation failed", zap.Error(err))
		return err
	}
	e.logger.Info("fee charged",
		zap.Uint64("amount", e.amount),
		zap.Uint64("fee", c.Fee),
		zap.Uint64("after_fee", c.AfterFee),
	)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "fee=%d after_fee=%d\n", c.Fee, c.AfterFee)
	return err
}

func runReverse(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	g, err := e.conv.Rate().Reverse(e.amount, e.mode)
	if err != nil {
		e.logger.Error("reverse failed", zap.Error(err))
		return err
	}
	e.logger.Info("reversed",
		zap.Uint64("applied", e.amount),
		zap.Uint64("min", g.Min),
		zap.Uint64("max", g.Max),
	)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "min=%d max=%d\n", g.Min, g.Max)
	return err
}

func quoteFields(q ratio.Quote) []zap.Field {
	return []zap.Field{
		zap.Uint64("in", q.In),
		zap.Uint64("fee", q.Fee),
		zap.Uint64("out", q.Out),
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
