package store

import (
	"encoding/json"
	"strconv"
	"strings"
)

// lookup fetches the raw string at (section, key). Missing sections and
// missing keys both resolve to "absent" but are logged distinctly so file
// problems can be told apart in diagnostics.
func (s *Store) lookup(section, key string) (string, bool) {
	sec, err := s.file.GetSection(section)
	if err != nil {
		s.log.Error().Msgf("no section named %s.", section)
		return "", false
	}
	if !sec.HasKey(key) {
		s.log.Error().Msgf("no value for %s.%s", section, key)
		return "", false
	}
	return sec.Key(key).Value(), true
}

// readTyped is the single resolution path shared by all typed accessors:
// reload, look up, fall back to the default, coerce, and persist the
// resolved value back when the key was absent from the file.
//
// def == nil means the caller has no fallback; required then decides whether
// the miss is reported as an error. parse turns the stored string into T and
// format renders T back into its stored string form.
func readTyped[T any](s *Store, section, key, typeName string, def *T, required bool,
	parse func(string) (T, error), format func(T) string) (T, bool) {
	var zero T

	if err := s.reload(true); err != nil {
		s.log.Error().Err(err).Msg("error reloading store")
		return zero, false
	}
	if section == "" || key == "" {
		s.log.Error().Msg("Plz specify section/key name!")
		return zero, false
	}

	raw, found := s.lookup(section, key)
	if !found {
		if def == nil {
			if required {
				s.log.Error().Msg("this field cannot to be set None")
			}
			return zero, false
		}
		raw = format(*def)
		s.log.Info().Msgf("use default value: %s.", raw)
	}

	value, err := parse(raw)
	if err != nil {
		s.log.Warn().Msgf("value type for %s.%s is not %q (value = %s).", section, key, typeName, raw)
		if def == nil {
			return zero, false
		}
		value = *def
	}

	if !found {
		// the resolved value was not in the file yet; heal it in
		s.Write(section, key, format(value), true)
	}
	return value, true
}

// Read returns the string stored at (section, key).
//
// When the key is absent the default is returned instead and, being missing
// from the file, persisted into it. required controls whether an absent key
// without a default is reported as an error; either way the second return
// value is false when no value could be resolved.
func (s *Store) Read(section, key string, def *string, required bool) (string, bool) {
	return readTyped(s, section, key, "string", def, required,
		func(raw string) (string, error) { return raw, nil },
		func(v string) string { return v },
	)
}

// ReadBool is Read for booleans. Stored values are matched against TRUE and
// FALSE case-insensitively; anything else is a coercion failure resolved via
// the typed default (with a warning) or reported as unresolved.
func (s *Store) ReadBool(section, key string, def *bool, required bool) (bool, bool) {
	return readTyped(s, section, key, "bool", def, required, parseBool, strconv.FormatBool)
}

// ReadInt is Read for base-10 integers.
func (s *Store) ReadInt(section, key string, def *int64, required bool) (int64, bool) {
	return readTyped(s, section, key, "int", def, required,
		func(raw string) (int64, error) { return strconv.ParseInt(raw, 10, 64) },
		func(v int64) string { return strconv.FormatInt(v, 10) },
	)
}

// ReadFloat is Read for floating-point numbers.
func (s *Store) ReadFloat(section, key string, def *float64, required bool) (float64, bool) {
	return readTyped(s, section, key, "float", def, required,
		func(raw string) (float64, error) { return strconv.ParseFloat(raw, 64) },
		func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
	)
}

// ReadJSON parses the string stored at (section, key) as JSON. There is no
// default fallback and nothing is persisted back; a missing key or a parse
// failure resolves to (nil, false) after logging.
func (s *Store) ReadJSON(section, key string) (any, bool) {
	if err := s.reload(true); err != nil {
		s.log.Error().Err(err).Msg("error reloading store")
		return nil, false
	}
	if section == "" || key == "" {
		s.log.Error().Msg("Plz specify section/key name!")
		return nil, false
	}

	raw, found := s.lookup(section, key)
	if !found {
		s.log.Error().Msg("this field cannot to be set None")
		return nil, false
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.log.Warn().Msgf(`value type for %s.%s is not "json" (value = %s).`, section, key, raw)
		return nil, false
	}
	return value, true
}

func parseBool(raw string) (bool, error) {
	switch strings.ToUpper(raw) {
	case "TRUE":
		return true, nil
	case "FALSE":
		return false, nil
	}
	return false, strconv.ErrSyntax
}
