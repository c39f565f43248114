package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInterpretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interpret \"<request>\"",
		Short: "Classify a request into an action without executing it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := requestArg(args)
			if err != nil {
				return err
			}
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			interpreted, err := a.interp.Interpret(cmd.Context(), text)
			if err != nil {
				return err
			}
			return printJSON(interpreted)
		},
	}
}

func newDispatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch \"<request>\"",
		Short: "Interpret a request and execute the resulting action",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := requestArg(args)
			if err != nil {
				return err
			}
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.orch.HandleText(cmd.Context(), text)
			if err != nil {
				a.log.Error("dispatch failed", zap.Error(err))
				return err
			}
			return printJSON(result)
		},
	}
}

func newFunnelCmd() *cobra.Command {
	var funnelID string
	cmd := &cobra.Command{
		Use:   "funnel \"<objective>\"",
		Short: "Run a declared funnel against a business objective",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			objective, err := requestArg(args)
			if err != nil {
				return err
			}
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.orch.RunFunnel(cmd.Context(), funnelID, objective)
			if err != nil {
				a.log.Error("funnel failed", zap.String("funnel", funnelID), zap.Error(err))
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&funnelID, "id", "digital_product", "funnel to run")
	return cmd
}

func newCapabilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "List the registered capability catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			type entry struct {
				Name        string `json:"name"`
				Description string `json:"description"`
				Kind        string `json:"kind"`
			}
			registry := a.caps.Registry()
			entries := make([]entry, 0, registry.Count())
			for _, name := range registry.Names() {
				d := registry.Get(name)
				entries = append(entries, entry{
					Name:        d.Name,
					Description: d.Description,
					Kind:        string(d.Kind),
				})
			}
			return printJSON(entries)
		},
	}
}
