package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-conf-keeper/internal/store"
)

func newGetCmd(app *App) *cobra.Command {
	var (
		valueType string
		defArg    string
		optional  bool
	)

	cmd := &cobra.Command{
		Use:   "get SECTION KEY",
		Short: "Read one value, optionally coerced to a type",
		Long: `Get prints the value stored at SECTION.KEY. With --default the store
falls back to the given value when the key is absent and persists it back
into the file. An unresolved value is an error unless --optional is set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, key := args[0], args[1]

			var def *string
			if cmd.Flags().Changed("default") {
				def = &defArg
			}

			out, ok, err := readValue(app.Store, valueType, section, key, def, !optional)
			if err != nil {
				return err
			}
			if !ok {
				if optional {
					return nil
				}
				return fmt.Errorf("no value resolved for %s.%s", section, key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&valueType, "type", "string", "value type: string, bool, int, float or json")
	cmd.Flags().StringVar(&defArg, "default", "", "fallback value when the key is absent")
	cmd.Flags().BoolVar(&optional, "optional", false, "do not treat an unresolved value as an error")
	return cmd
}

// readValue dispatches to the typed accessor matching valueType and renders
// the result back into its printable string form.
func readValue(s *store.Store, valueType, section, key string, def *string, required bool) (string, bool, error) {
	switch valueType {
	case "string":
		v, ok := s.Read(section, key, def, required)
		return v, ok, nil

	case "bool":
		var typedDef *bool
		if def != nil {
			parsed, err := strconv.ParseBool(*def)
			if err != nil {
				return "", false, fmt.Errorf("bad bool default %q", *def)
			}
			typedDef = &parsed
		}
		v, ok := s.ReadBool(section, key, typedDef, required)
		return strconv.FormatBool(v), ok, nil

	case "int":
		var typedDef *int64
		if def != nil {
			parsed, err := strconv.ParseInt(*def, 10, 64)
			if err != nil {
				return "", false, fmt.Errorf("bad int default %q", *def)
			}
			typedDef = &parsed
		}
		v, ok := s.ReadInt(section, key, typedDef, required)
		return strconv.FormatInt(v, 10), ok, nil

	case "float":
		var typedDef *float64
		if def != nil {
			parsed, err := strconv.ParseFloat(*def, 64)
			if err != nil {
				return "", false, fmt.Errorf("bad float default %q", *def)
			}
			typedDef = &parsed
		}
		v, ok := s.ReadFloat(section, key, typedDef, required)
		return strconv.FormatFloat(v, 'g', -1, 64), ok, nil

	case "json":
		v, ok := s.ReadJSON(section, key)
		if !ok {
			return "", false, nil
		}
		rendered, err := json.Marshal(v)
		if err != nil {
			return "", false, fmt.Errorf("rendering json value: %w", err)
		}
		return string(rendered), true, nil
	}

	return "", false, fmt.Errorf("unknown value type %q", valueType)
}
