// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements a persistent sectioned key-value configuration
// store backed by an INI file on disk.
//
// The Store keeps parsed sections in memory and mirrors them 1:1 to the
// file. Every accessor re-reads the file before acting, so edits made by
// other processes are picked up opportunistically; no locking of any kind is
// performed and the last writer wins. Reads resolve missing values through
// caller-supplied defaults and persist those defaults back into the file, so
// a freshly created store heals itself into a fully populated one over time.
package store

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"gopkg.in/ini.v1"

	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/internal/prompt"
)

// osExit is swapped out in tests to observe fatal paths.
var osExit = os.Exit

// DefaultEncoding is the text encoding used when none is configured.
const DefaultEncoding = "UTF-8"

// Store provides typed access to a sectioned configuration file.
// The zero value is not usable; construct instances with Open.
type Store struct {
	path         string
	encodingName string
	enc          encoding.Encoding
	interactive  bool
	asker        prompt.Asker
	log          *logger.Logger
	file         *ini.File
}

// Option customizes a Store at construction time.
type Option func(*Store)

// WithEncoding sets the text encoding of the backing file by IANA name
// (e.g. "UTF-8", "Shift_JIS"). The default is UTF-8.
func WithEncoding(name string) Option {
	return func(s *Store) { s.encodingName = name }
}

// WithInteractive controls what happens when the backing file is missing at
// construction time: interactive stores ask the operator to create it,
// non-interactive stores terminate the process with a non-zero status.
func WithInteractive(interactive bool) Option {
	return func(s *Store) { s.interactive = interactive }
}

// WithPrompt redirects the create-file confirmation away from the process
// standard streams. Intended for tests and embedding tools.
func WithPrompt(in io.Reader, out io.Writer) Option {
	return func(s *Store) { s.asker = prompt.Asker{In: in, Out: out} }
}

// WithLogger replaces the default diagnostics logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open loads the configuration file at path into a new Store.
//
// When the file does not exist an interactive store asks
// `<path> is not exist. Create it? [Y/n]` and, on confirmation, writes an
// empty file immediately; a non-interactive store exits the process with a
// non-zero status.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	s := &Store{
		path:         path,
		encodingName: DefaultEncoding,
		asker:        prompt.Asker{In: os.Stdin, Out: os.Stdout},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.New("confkeeper.store")
	}

	enc, err := ianaindex.IANA.Encoding(s.encodingName)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, s.encodingName)
	}
	s.enc = enc
	s.file = ini.Empty()

	if err := s.reload(false); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the backing file, discarding unsaved in-memory changes.
// Accessors already reload implicitly; Reload exists for callers with their
// own consistency needs.
func (s *Store) Reload() error {
	return s.reload(true)
}

// reload synchronizes the in-memory sections from disk. A missing file is
// fatal when forceQuit is set or the store is non-interactive; otherwise the
// operator is asked whether to create it.
func (s *Store) reload(forceQuit bool) error {
	if _, err := os.Stat(s.path); err == nil {
		data, err := os.ReadFile(s.path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", s.path, err)
		}
		decoded, err := s.enc.NewDecoder().Bytes(data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", s.path, err)
		}
		file, err := ini.Load(decoded)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", s.path, err)
		}
		s.merge(file)
		return nil
	}

	if forceQuit || !s.interactive {
		s.log.Error().Msgf("%s is not exist. Plz make it first.", s.path)
		osExit(1)
		return nil
	}

	question := fmt.Sprintf("%s is not exist. Create it? [Y/n]", s.path)
	if answer := s.asker.Ask(question, prompt.YesNo, "y"); prompt.IsYes(answer) {
		s.Export(s.path, false)
	}
	return nil
}

// merge adopts loaded as the new in-memory state, carrying over values that
// were set in memory but never saved. On collision the file wins, so external
// edits stay authoritative while non-persisted writes survive the implicit
// reload preceding every operation.
func (s *Store) merge(loaded *ini.File) {
	if s.file != nil {
		for _, sec := range s.file.Sections() {
			for _, k := range sec.Keys() {
				target := loaded.Section(sec.Name())
				if !target.HasKey(k.Name()) {
					target.Key(k.Name()).SetValue(k.Value())
				}
			}
		}
	}
	s.file = loaded
}

// Write sets (section, key) to value, creating the section when absent.
// Empty section or key names terminate the process with a non-zero status.
// When persist is set the whole store is saved to disk immediately.
func (s *Store) Write(section, key, value string, persist bool) {
	if err := s.reload(true); err != nil {
		s.log.Error().Err(err).Msg("error reloading store")
		return
	}
	if section == "" || key == "" {
		s.log.Error().Msg("Plz specify section/key name!")
		osExit(1)
		return
	}

	sec, err := s.file.GetSection(section)
	if err != nil {
		s.log.Warn().Msgf("No section named %s. Create new one.", section)
		sec, err = s.file.NewSection(section)
		if err != nil {
			s.log.Error().Err(err).Msgf("error creating section %s", section)
			return
		}
	}
	sec.Key(key).SetValue(value)
	s.log.Info().Msgf("Set value: %s.%s = %s.", section, key, value)

	if persist {
		if err := s.save(); err != nil {
			s.log.Error().Err(err).Msg("error saving store")
		}
	}
}

// Save normalizes and persists the in-memory store to the backing file.
func (s *Store) Save() error {
	return s.save()
}

// save rewrites the whole file. Keys of every section are removed and
// re-inserted in lexicographic order first, keeping serialized output
// deterministic and diff-friendly.
func (s *Store) save() error {
	for _, sec := range s.file.Sections() {
		keys := sec.KeyStrings()
		sort.Strings(keys)

		values := make(map[string]string, len(keys))
		for _, k := range keys {
			values[k] = sec.Key(k).Value()
		}
		for _, k := range keys {
			sec.DeleteKey(k)
		}
		for _, k := range keys {
			if _, err := sec.NewKey(k, values[k]); err != nil {
				return fmt.Errorf("reinserting %s.%s: %w", sec.Name(), k, err)
			}
		}
	}
	return s.writeFile(s.path)
}

// Export serializes the current in-memory store to path. An existing target
// is refused unless force is set; refusal and write failures are logged and
// reported as false.
func (s *Store) Export(path string, force bool) bool {
	if _, err := os.Stat(path); err == nil && !force {
		s.log.Error().Msgf("%s is already exist.", path)
		return false
	}
	if err := s.writeFile(path); err != nil {
		s.log.Error().Err(err).Msgf("error exporting to %s", path)
		return false
	}
	s.log.Debug().Msg("Save successful!")
	return true
}

// writeFile serializes the in-memory sections through the configured text
// encoding and rewrites path in full.
func (s *Store) writeFile(path string) error {
	var buf bytes.Buffer
	if _, err := s.file.WriteTo(&buf); err != nil {
		return fmt.Errorf("serializing store: %w", err)
	}
	encoded, err := s.enc.NewEncoder().Bytes(buf.Bytes())
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Sections lists the section names currently present in the file.
func (s *Store) Sections() []string {
	if err := s.reload(true); err != nil {
		s.log.Error().Err(err).Msg("error reloading store")
		return nil
	}
	return s.sectionNames()
}

func (s *Store) sectionNames() []string {
	names := make([]string, 0, len(s.file.Sections()))
	for _, sec := range s.file.Sections() {
		// ini.v1 always materializes an unnamed default section; hide it
		// unless someone actually stored keys there.
		if sec.Name() == ini.DefaultSection && len(sec.KeyStrings()) == 0 {
			continue
		}
		names = append(names, sec.Name())
	}
	return names
}

// Keys lists the key names of section in file order. A missing section
// yields nil.
func (s *Store) Keys(section string) []string {
	if err := s.reload(true); err != nil {
		s.log.Error().Err(err).Msg("error reloading store")
		return nil
	}
	sec, err := s.file.GetSection(section)
	if err != nil {
		return nil
	}
	return sec.KeyStrings()
}

// Items returns a copy of section's key-value pairs. A missing section
// yields nil.
func (s *Store) Items(section string) map[string]string {
	if err := s.reload(true); err != nil {
		s.log.Error().Err(err).Msg("error reloading store")
		return nil
	}
	sec, err := s.file.GetSection(section)
	if err != nil {
		return nil
	}
	items := make(map[string]string, len(sec.Keys()))
	for _, k := range sec.Keys() {
		items[k.Name()] = k.Value()
	}
	return items
}
