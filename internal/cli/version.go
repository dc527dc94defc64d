package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ppiankov/toolrisk/internal/render"
)

const version = "0.3.0"

var versionJSON bool

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version information as JSON")
}

type versionInfo struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := versionInfo{
			Name:     "toolrisk",
			Version:  version,
			Go:       runtime.Version(),
			Platform: runtime.GOOS + "/" + runtime.GOARCH,
		}
		w := cmd.OutOrStdout()
		if versionJSON {
			return render.WriteJSON(w, info)
		}
		_, err := fmt.Fprintf(w, "%s %s (%s, %s)\n", info.Name, info.Version, info.Go, info.Platform)
		return err
	},
}
