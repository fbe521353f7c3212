/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"dirpx.dev/guard/catalog"
	"dirpx.dev/guard/category"
	"github.com/spf13/cobra"
)

var catalogCategory string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List guarded call sites",
	Long: `List every guarded call site compiled into guardctl with its category
and the sentinel that marks a failed call.

Examples:
  guardctl catalog
  guardctl catalog --category zlib
  guardctl catalog --json`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogCategory, "category", "c", "", "Only list sites of this category")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	entries := catalog.All()
	if catalogCategory != "" {
		c, err := category.Parse(catalogCategory)
		if err != nil {
			return fmt.Errorf("--category %q: %w", catalogCategory, err)
		}
		entries = catalog.ByCategory(c)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No call sites.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OPERATION\tCATEGORY\tSENTINEL")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Category, e.Sentinel)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d call site(s)\n", len(entries))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
