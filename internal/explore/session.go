// Package explore implements the line-oriented filter session: each command
// adjusts the filter state and the dashboard is re-rendered.
package explore

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/KaramelBytes/depdash/internal/dashboard"
	"github.com/KaramelBytes/depdash/internal/utils"
)

// OpenFunc returns the dashboard to explore. It is called once at start and
// again on "reload"; callers back it with a dataset cache.
type OpenFunc func() (*dashboard.Dashboard, error)

// Session holds the dashboard and the current filter state.
type Session struct {
	open   OpenFunc
	dash   *dashboard.Dashboard
	state  dashboard.State
	logger *zap.Logger
}

// New opens the dashboard and starts from its default state.
func New(open OpenFunc, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d, err := open()
	if err != nil {
		return nil, err
	}
	return &Session{open: open, dash: d, state: d.DefaultState(), logger: logger}, nil
}

// State returns the current filter state.
func (s *Session) State() dashboard.State { return s.state }

const help = `commands:
  year 7,8 | year all | year none
  provision Eduk8,Mainstream | provision all | provision none
  marker +fsm | marker -fsm
  reset      select everything, clear markers
  options    list filter values
  show       print the report
  json       print the view as JSON
  reload     re-read the data file if it changed
  quit
`

// Exec runs one command line and writes its output to w. done is true when
// the session should end.
func (s *Session) Exec(line string, w io.Writer) (done bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, rest := strings.ToLower(fields[0]), strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	s.logger.Debug("explore command", zap.String("command", cmd), zap.String("args", rest))

	opts := s.dash.Options()
	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		_, err = io.WriteString(w, help)
		return false, err
	case "year", "years":
		vals, err := selection(rest, opts.YearGroups)
		if err != nil {
			return false, err
		}
		return false, s.apply(s.state.WithYearGroups(vals), w)
	case "provision", "provisions":
		vals, err := selection(rest, opts.Provisions)
		if err != nil {
			return false, err
		}
		return false, s.apply(s.state.WithProvisions(vals), w)
	case "marker", "markers":
		next := s.state
		for _, tok := range splitList(rest) {
			on := true
			switch tok[0] {
			case '+':
				tok = tok[1:]
			case '-':
				on, tok = false, tok[1:]
			}
			if _, err := s.dash.Settings().Marker(tok); err != nil {
				return false, err
			}
			next = next.WithMarker(tok, on)
		}
		return false, s.apply(next, w)
	case "reset":
		return false, s.apply(s.dash.DefaultState(), w)
	case "options":
		_, err = fmt.Fprintf(w, "year groups: %s\nprovisions: %s\nmarkers: %s\n",
			strings.Join(opts.YearGroups, ", "), strings.Join(opts.Provisions, ", "), markerNames(opts.Markers))
		return false, err
	case "show":
		v, err := s.dash.Render(s.state)
		if err != nil {
			return false, err
		}
		return false, dashboard.WriteMarkdown(w, v)
	case "json":
		v, err := s.dash.Render(s.state)
		if err != nil {
			return false, err
		}
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return false, err
		}
		_, err = fmt.Fprintln(w, string(b))
		return false, err
	case "reload":
		d, err := s.open()
		if err != nil {
			return false, err
		}
		s.dash = d
		return false, s.apply(s.state, w)
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

// Run reads commands from r until EOF or quit. Command errors are printed
// and the session continues.
func (s *Session) Run(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	fmt.Fprint(w, "> ")
	for sc.Scan() {
		done, err := s.Exec(sc.Text(), w)
		if err != nil {
			fmt.Fprintln(w, "✗ Error:", err)
		}
		if done {
			return nil
		}
		fmt.Fprint(w, "> ")
	}
	return sc.Err()
}

func (s *Session) apply(next dashboard.State, w io.Writer) error {
	v, err := s.dash.Render(next)
	if err != nil {
		return err
	}
	s.state = next
	_, err = fmt.Fprintf(w, "Students: %d of %d | years: %s | provisions: %s | markers: %s\n",
		v.Total, v.Population, joinOrNone(next.YearGroups), joinOrNone(next.Provisions), joinOrNone(next.Markers))
	return err
}

// selection resolves "all", "none" or a comma-separated list against the
// offered values. Unknown values are rejected.
func selection(arg string, offered []string) ([]string, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "all", "*":
		return append([]string(nil), offered...), nil
	case "none", "":
		return []string{}, nil
	}
	known := make(map[string]bool, len(offered))
	for _, o := range offered {
		known[o] = true
	}
	var out []string
	for _, v := range strings.Split(arg, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if !known[v] {
			return nil, fmt.Errorf("unknown value %q (offered: %s)", v, strings.Join(offered, ", "))
		}
		out = append(out, v)
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func markerNames(ms []dashboard.MarkerOption) string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name
	}
	return strings.Join(names, ", ")
}

func joinOrNone(ss []string) string {
	if len(ss) == 0 {
		return "-"
	}
	return strings.Join(ss, ",")
}
