package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ojroom/preview/internal/config"
	"github.com/ojroom/preview/internal/render"
)

// newConfigCmd creates the config command
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(a.cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configFile()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configFile()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if a.configPath != "" {
				err = config.SaveConfigTo(path, config.DefaultConfig())
			} else {
				err = config.SaveConfig(config.DefaultConfig())
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), successLine(fmt.Sprintf("✓ Wrote %s", path)))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	for _, o := range config.GetConfigOptions() {
		cmd.Long += fmt.Sprintf("\n  %-28s %v\n      %s", o.Key, o.Default, o.Comment)
	}
	cmd.Long = "Keys and defaults:" + cmd.Long + "\n\nTerminal styles for markdown.style:"
	for _, st := range render.AvailableStyles() {
		cmd.Long += fmt.Sprintf("\n  %-10s %s", st.Name, st.Description)
	}
	cmd.Long += "\n  Any other value is read as a path to a JSON style file."
	return cmd
}

func (a *app) configFile() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.GetConfigPath()
}
