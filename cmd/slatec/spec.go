package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"slate/internal/driver"
)

var specCmd = &cobra.Command{
	Use:   "spec [flags] unit.toml",
	Short: "Emit the binary runtime spec for a compilation unit",
	Long:  `Spec processes a unit manifest and writes the encoded reflection records the runtime loads, one file per exported variable`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSpec,
}

func init() {
	specCmd.Flags().StringP("out", "o", ".", "output directory for .spec files")
	specCmd.Flags().Bool("cache", false, "reuse cached specs for unchanged manifests")
}

func runSpec(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]

	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}

	payload, err := loadOrBuildSpecs(cmd, manifestPath, useCache)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	for _, v := range payload.Vars {
		out := filepath.Join(outDir, v.Name+".spec")
		if err := os.WriteFile(out, v.Spec, 0o644); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "wrote %s (%d bytes)\n", out, len(v.Spec))
		}
	}
	return nil
}

func loadOrBuildSpecs(cmd *cobra.Command, manifestPath string, useCache bool) (*driver.SpecPayload, error) {
	var cache *driver.SpecCache
	var key driver.Digest

	if useCache {
		c, err := driver.OpenSpecCache("slatec")
		if err != nil {
			return nil, err
		}
		cache = c
	}

	res, err := driver.ProcessUnit(manifestPath, maxDiagnostics(cmd))
	if err != nil {
		return nil, err
	}
	if err := reportDiagnostics(cmd, res); err != nil {
		return nil, err
	}
	if res.Bag.HasErrors() {
		return nil, fmt.Errorf("export failed with errors")
	}

	if cache != nil {
		key, err = driver.HashUnit(manifestPath, res.Target)
		if err != nil {
			return nil, err
		}
		var cached driver.SpecPayload
		if hit, err := cache.Get(key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	payload, err := driver.EncodeUnitSpecs(res)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		if err := cache.Put(key, payload); err != nil {
			return nil, err
		}
	}
	return payload, nil
}
