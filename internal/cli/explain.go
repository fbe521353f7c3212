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
	"strings"

	"dirpx.dev/guard/catalog"
	"dirpx.dev/guard/category"
	"dirpx.dev/guard/mapper"
	"dirpx.dev/guard/opname"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <operation>",
	Short: "Explain the transport status of an operation",
	Long: `Show which mapping rule turns a failure of <operation> into an HTTP
status and a gRPC code. Overrides from GUARD_STATUS_OVERRIDES apply.

The category is taken from the catalog, or from the first segment of the
operation name when the operation is not registered.

Examples:
  guardctl explain filesystem.file_get_contents
  GUARD_STATUS_OVERRIDES=zlib=422 guardctl explain zlib.gzdecode`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

// explanation is the --json form of explain.
type explanation struct {
	Operation opname.Name       `json:"operation"`
	Category  category.Category `json:"category"`
	HTTP      int               `json:"http"`
	GRPC      string            `json:"grpc"`
}

func runExplain(cmd *cobra.Command, argv []string) error {
	op, err := opname.Parse(argv[0])
	if err != nil {
		return err
	}
	c, err := categoryOf(op)
	if err != nil {
		return err
	}
	e, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		st := e.mapper.Status(c, op)
		return writeJSON(out, explanation{
			Operation: op,
			Category:  c,
			HTTP:      st.HTTP,
			GRPC:      mapper.CodeName(st.GRPC),
		})
	}
	fmt.Fprintln(out, e.mapper.Explain(c, op))
	return nil
}

func categoryOf(op opname.Name) (category.Category, error) {
	if entry, ok := catalog.Lookup(op); ok {
		return entry.Category, nil
	}
	head, _, _ := strings.Cut(string(op), ".")
	c, err := category.Parse(head)
	if err != nil {
		return category.Empty, fmt.Errorf("operation %q: %w", op, err)
	}
	return c, nil
}
