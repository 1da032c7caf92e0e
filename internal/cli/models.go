package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/42apps/nanobanana"
	"github.com/spf13/cobra"
)

func (a *App) newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List providers, models and their credential status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.LoadConfig()
			if err != nil {
				return &nanobanana.ConfigurationError{Err: err}
			}
			return a.listModels(cfg)
		},
	}
}

func (a *App) listModels(cfg *nanobanana.Config) error {
	tw := tabwriter.NewWriter(a.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROVIDER\tMODEL\tAPI MODEL\tMAX REFS\tCREDENTIAL")

	for _, name := range nanobanana.SupportedProviders {
		p, ok := a.Providers[name]
		if !ok {
			continue
		}

		status := "set"
		if _, err := cfg.APIKey(name); err != nil {
			status = "missing " + nanobanana.CredentialVariable(name)
		}
		for _, m := range p.Models {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				name, m.Name, m.APIModelName, m.Capabilities.MaxInputImages, status)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	ratios := make([]string, 0, len(nanobanana.SupportedAspectRatios))
	for _, r := range nanobanana.SupportedAspectRatios {
		ratios = append(ratios, r.String())
	}
	sizes := make([]string, 0, len(nanobanana.SupportedImageSizes))
	for _, s := range nanobanana.SupportedImageSizes {
		sizes = append(sizes, s.String())
	}

	fmt.Fprintf(a.Stdout, "\nAspect ratios: %s\n", strings.Join(ratios, ", "))
	fmt.Fprintf(a.Stdout, "Resolutions: %s\n", strings.Join(sizes, ", "))
	fmt.Fprintf(a.Stdout, "\nEnvironment:\n%s\n", nanobanana.EnvironmentHelp())
	return nil
}
