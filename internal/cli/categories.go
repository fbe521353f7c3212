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
	"fmt"
	"text/tabwriter"

	"dirpx.dev/guard/catalog"
	"dirpx.dev/guard/category"
	"dirpx.dev/guard/mapper"
	"dirpx.dev/guard/opname"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List error categories and their default statuses",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

// categoryRow is one line of the categories listing.
type categoryRow struct {
	Category category.Category `json:"category"`
	HTTP     int               `json:"http"`
	GRPC     string            `json:"grpc"`
	Sites    int               `json:"sites"`
}

func runCategories(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cats := category.All()
	rows := make([]categoryRow, 0, len(cats))
	for _, c := range cats {
		st := e.mapper.Status(c, opname.Empty)
		rows = append(rows, categoryRow{
			Category: c,
			HTTP:     st.HTTP,
			GRPC:     mapper.CodeName(st.GRPC),
			Sites:    len(catalog.ByCategory(c)),
		})
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, rows)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tHTTP\tGRPC\tSITES")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n", r.Category, r.HTTP, r.GRPC, r.Sites)
	}
	return tw.Flush()
}
