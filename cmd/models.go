package cmd

import (
	"fmt"
	"sort"

	"github.com/nockchain/nocktool/internal/ai"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known chat models per backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := ai.Catalog()
		names := make([]string, 0, len(catalog))
		for name := range catalog {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			a, b := catalog[names[i]], catalog[names[j]]
			if a.Provider != b.Provider {
				return a.Provider < b.Provider
			}
			return a.Name < b.Name
		})
		for _, name := range names {
			mi := catalog[name]
			marker := " "
			if mi.Default {
				marker = "*"
			}
			fmt.Printf("%s %-10s %-28s ctx≈%d\n", marker, mi.Provider, mi.Name, mi.ContextTokens)
		}
		fmt.Println("\n* default model for its backend")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
