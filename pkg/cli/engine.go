// pkg/cli/engine.go
// Package cli implements the interactive command engine: a registry of
// named tables and a line-oriented command language over the relational
// operators.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"minirel/pkg/index"
	"minirel/pkg/schema"
	"minirel/pkg/snapshot"
	"minirel/pkg/table"
	"minirel/pkg/types"
)

// ErrExit is returned by Execute when the user asked to leave.
var ErrExit = errors.New("exit")

var errUsage = errors.New("usage")

// Engine holds the named tables and executes commands against them.
type Engine struct {
	tables map[string]*table.Table
	kind   index.Kind
	out    io.Writer
}

// NewEngine creates an engine whose new tables use the given index kind.
func NewEngine(kind index.Kind, out io.Writer) *Engine {
	return &Engine{
		tables: make(map[string]*table.Table),
		kind:   kind,
		out:    out,
	}
}

// Table returns a registered table.
func (e *Engine) Table(name string) (*table.Table, bool) {
	t, ok := e.tables[name]
	return t, ok
}

// Run executes commands from r line by line, printing errors without
// stopping, until EOF or EXIT.
func (e *Engine) Run(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := e.Execute(sc.Text()); err != nil {
			if errors.Is(err, ErrExit) {
				return
			}
			fmt.Fprintf(e.out, "error: %v\n", err)
		}
	}
}

// Execute runs one command line.
func (e *Engine) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	verb := line
	rest := ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		verb, rest = line[:i], strings.TrimSpace(line[i+1:])
	}

	switch strings.ToUpper(verb) {
	case "CREATE":
		return e.cmdCreate(rest)
	case "INSERT":
		return e.cmdInsert(rest)
	case "SHOW":
		return e.cmdShow(rest)
	case "TABLES":
		return e.cmdTables()
	case "PROJECT":
		return e.cmdProject(rest)
	case "SELECT":
		return e.cmdSelect(rest)
	case "UNION":
		return e.cmdBinary(rest, "UNION")
	case "MINUS":
		return e.cmdBinary(rest, "MINUS")
	case "JOIN":
		return e.cmdJoin(rest, false)
	case "INDEXJOIN":
		return e.cmdJoin(rest, true)
	case "SAVE":
		return e.cmdSave(rest)
	case "LOAD":
		return e.cmdLoad(rest)
	case "HELP":
		e.printHelp()
		return nil
	case "EXIT", "QUIT":
		return ErrExit
	default:
		return fmt.Errorf("unknown command %q (try HELP)", verb)
	}
}

// CREATE name (attr:type, ...) KEY a[,b]
func (e *Engine) cmdCreate(rest string) error {
	open := strings.IndexByte(rest, '(')
	close := strings.LastIndexByte(rest, ')')
	if open < 0 || close < open {
		return fmt.Errorf("%w: CREATE name (attr:type, ...) KEY a[,b]", errUsage)
	}
	name := strings.TrimSpace(rest[:open])
	if name == "" || len(strings.Fields(name)) != 1 {
		return fmt.Errorf("%w: CREATE name (attr:type, ...) KEY a[,b]", errUsage)
	}
	if _, exists := e.tables[name]; exists {
		return fmt.Errorf("table %q already exists", name)
	}

	var attrs []string
	var domains []types.ValueType
	for _, col := range strings.Split(rest[open+1:close], ",") {
		parts := strings.SplitN(strings.TrimSpace(col), ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("%w: column %q, want attr:type", errUsage, col)
		}
		d, err := types.ParseType(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}
		attrs = append(attrs, strings.TrimSpace(parts[0]))
		domains = append(domains, d)
	}

	tail := strings.Fields(rest[close+1:])
	if len(tail) != 2 || !strings.EqualFold(tail[0], "KEY") {
		return fmt.Errorf("%w: CREATE name (attr:type, ...) KEY a[,b]", errUsage)
	}
	key := splitList(tail[1])

	s, err := schema.New(name, attrs, domains, key)
	if err != nil {
		return err
	}
	e.tables[name] = table.New(s, e.kind)
	fmt.Fprintf(e.out, "created %s\n", s)
	return nil
}

// INSERT name v1 v2 ...
func (e *Engine) cmdInsert(rest string) error {
	args := tokenize(rest)
	if len(args) < 2 {
		return fmt.Errorf("%w: INSERT name v1 v2 ...", errUsage)
	}
	t, err := e.lookup(args[0])
	if err != nil {
		return err
	}
	s := t.Schema()
	if len(args)-1 != s.Arity() {
		return fmt.Errorf("%d values for %d attributes", len(args)-1, s.Arity())
	}
	tu := make(types.Tuple, s.Arity())
	for i, tok := range args[1:] {
		v, err := parseValue(s.Domains[i], tok)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", s.Attrs[i], err)
		}
		tu[i] = v
	}
	return t.Insert(tu)
}

func (e *Engine) cmdShow(rest string) error {
	t, err := e.lookup(strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	t.Fprint(e.out)
	return nil
}

func (e *Engine) cmdTables() error {
	names := make([]string, 0, len(e.tables))
	for n := range e.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(e.out, "%s\t%d rows\t%s index\n", e.tables[n].Schema(), e.tables[n].Size(), e.tables[n].IndexKind())
	}
	return nil
}

// PROJECT name a,b [AS new]
func (e *Engine) cmdProject(rest string) error {
	args, as := stripAs(tokenize(rest))
	if len(args) != 2 {
		return fmt.Errorf("%w: PROJECT name a,b [AS new]", errUsage)
	}
	t, err := e.lookup(args[0])
	if err != nil {
		return err
	}
	res, err := t.Project(splitList(args[1])...)
	if err != nil {
		return err
	}
	return e.finish(res, as)
}

// SELECT name WHERE attr=value [AS new]
// SELECT name KEY v1[,v2] [AS new]
func (e *Engine) cmdSelect(rest string) error {
	args, as := stripAs(tokenize(rest))
	if len(args) != 3 {
		return fmt.Errorf("%w: SELECT name WHERE attr=value | SELECT name KEY v1[,v2]", errUsage)
	}
	t, err := e.lookup(args[0])
	if err != nil {
		return err
	}
	s := t.Schema()

	switch strings.ToUpper(args[1]) {
	case "WHERE":
		attr, lit, ok := strings.Cut(args[2], "=")
		if !ok {
			return fmt.Errorf("%w: WHERE attr=value", errUsage)
		}
		pos, err := s.Match([]string{attr})
		if err != nil {
			return err
		}
		want, err := parseValue(s.Domains[pos[0]], lit)
		if err != nil {
			return err
		}
		res := t.Select(func(tu types.Tuple) bool {
			return tu[pos[0]].Equal(want)
		})
		return e.finish(res, as)

	case "KEY":
		lits := splitList(args[2])
		kpos, err := s.Match(s.Key)
		if err != nil {
			return err
		}
		if len(lits) != len(kpos) {
			return fmt.Errorf("%d key values for %d key attributes", len(lits), len(kpos))
		}
		k := make(types.Key, len(lits))
		for i, lit := range lits {
			v, err := parseValue(s.Domains[kpos[i]], lit)
			if err != nil {
				return err
			}
			k[i] = v
		}
		return e.finish(t.SelectKey(k), as)

	default:
		return fmt.Errorf("%w: SELECT name WHERE attr=value | SELECT name KEY v1[,v2]", errUsage)
	}
}

// UNION a b [AS new] / MINUS a b [AS new]
func (e *Engine) cmdBinary(rest, op string) error {
	args, as := stripAs(tokenize(rest))
	if len(args) != 2 {
		return fmt.Errorf("%w: %s a b [AS new]", errUsage, op)
	}
	l, err := e.lookup(args[0])
	if err != nil {
		return err
	}
	r, err := e.lookup(args[1])
	if err != nil {
		return err
	}
	var res *table.Table
	if op == "UNION" {
		res, err = l.Union(r)
	} else {
		res, err = l.Minus(r)
	}
	if err != nil {
		return err
	}
	return e.finish(res, as)
}

// JOIN a b ON x=y[,u=v] [AS new] / INDEXJOIN a b ON x=y [AS new]
func (e *Engine) cmdJoin(rest string, indexed bool) error {
	args, as := stripAs(tokenize(rest))
	if len(args) != 4 || !strings.EqualFold(args[2], "ON") {
		return fmt.Errorf("%w: JOIN a b ON x=y[,u=v] [AS new]", errUsage)
	}
	l, err := e.lookup(args[0])
	if err != nil {
		return err
	}
	r, err := e.lookup(args[1])
	if err != nil {
		return err
	}

	var attrsL, attrsR []string
	for _, pair := range splitList(args[3]) {
		x, y, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("%w: ON x=y[,u=v]", errUsage)
		}
		attrsL = append(attrsL, x)
		attrsR = append(attrsR, y)
	}

	var res *table.Table
	if indexed {
		if len(attrsL) != 1 {
			return fmt.Errorf("%w: INDEXJOIN takes a single attribute pair", errUsage)
		}
		res, err = l.IndexJoin(attrsL[0], attrsR[0], r)
	} else {
		res, err = l.Join(attrsL, attrsR, r)
	}
	if err != nil {
		return err
	}
	return e.finish(res, as)
}

// SAVE name path
func (e *Engine) cmdSave(rest string) error {
	args := tokenize(rest)
	if len(args) != 2 {
		return fmt.Errorf("%w: SAVE name path", errUsage)
	}
	t, err := e.lookup(args[0])
	if err != nil {
		return err
	}
	if err := snapshot.SaveFile(t, args[1]); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "saved %s to %s\n", args[0], args[1])
	return nil
}

// LOAD name path
func (e *Engine) cmdLoad(rest string) error {
	args := tokenize(rest)
	if len(args) != 2 {
		return fmt.Errorf("%w: LOAD name path", errUsage)
	}
	t, err := snapshot.LoadFile(args[1])
	if err != nil {
		return err
	}
	e.tables[args[0]] = t
	fmt.Fprintf(e.out, "loaded %s from %s (%d rows)\n", args[0], args[1], t.Size())
	return nil
}

// finish registers the result under a name or prints it.
func (e *Engine) finish(t *table.Table, as string) error {
	if as != "" {
		e.tables[as] = t
		fmt.Fprintf(e.out, "%s: %d rows\n", as, t.Size())
		return nil
	}
	t.Fprint(e.out)
	return nil
}

func (e *Engine) lookup(name string) (*table.Table, error) {
	t, ok := e.tables[name]
	if !ok {
		return nil, fmt.Errorf("no such table %q", name)
	}
	return t, nil
}

func (e *Engine) printHelp() {
	fmt.Fprint(e.out, `commands:
  CREATE name (attr:type, ...) KEY a[,b]   types: int8..int64, float32, float64, char, text
  INSERT name v1 v2 ...                    quote text values: "a b"
  SHOW name
  TABLES
  PROJECT name a,b [AS new]
  SELECT name WHERE attr=value [AS new]
  SELECT name KEY v1[,v2] [AS new]
  UNION a b [AS new]
  MINUS a b [AS new]
  JOIN a b ON x=y[,u=v] [AS new]
  INDEXJOIN a b ON x=y [AS new]
  SAVE name path
  LOAD name path
  EXIT
`)
}
