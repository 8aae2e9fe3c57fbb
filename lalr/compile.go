package lalr

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/reusee/phpedit/parsers"
	"github.com/reusee/phpedit/tokens"
	"github.com/samber/lo"
)

const (
	DefaultAction       = -32766
	UnexpectedTokenRule = 32767
)

// Report summarizes a compilation.
type Report struct {
	Terminals     int
	NonTerminals  int
	Rules         int
	States        int
	NonLeafStates int
	ActionSize    int
	GotoSize      int
	ShiftReduce   int
	ReduceReduce  int
	// one line per unresolved conflict
	Conflicts []string
}

type rule struct {
	lhs  int
	rhs  []int
	prec precedence
}

type state struct {
	kernel []int
	// symbol to state, sorted by symbol
	transSymbols []int
	transTargets []int
	// lookaheads per kernel item
	la        []bitset
	propagate [][]itemRef
}

type itemRef struct {
	state int
	index int
}

type compiler struct {
	g     *Grammar
	nT    int
	nSym  int
	names []string
	rules []rule
	// rules per nonterminal index
	rulesOf   [][]int
	nullable  []bool
	first     []bitset
	itemBase  []int
	itemRule  []int
	itemDot   []int
	suffixLA  [][]bitset
	suffixNul [][]bool

	states   []*state
	stateKey map[string]int
}

func (c *compiler) isTerminal(sym int) bool {
	return sym < c.nT
}

func (c *compiler) laBits() int {
	// one extra bit for the propagation marker
	return c.nT + 1
}

func (c *compiler) marker() int {
	return c.nT
}

// Compile builds parser tables for the grammar with start as start symbol.
func (g *Grammar) Compile(start string) (*parsers.Tables, *Report, error) {
	c := &compiler{
		g:        g,
		stateKey: make(map[string]int),
	}
	if err := c.resolveSymbols(start); err != nil {
		return nil, nil, err
	}
	c.computeFirst()
	c.computeItems()
	c.buildStates()
	c.computeLookaheads()
	return c.buildTables()
}

func (c *compiler) resolveSymbols(start string) error {
	g := c.g
	c.nT = len(g.terminals)
	c.names = slices.Clone(g.terminals)

	nonTerminals := map[string]int{}
	addNonTerminal := func(name string) int {
		if idx, ok := nonTerminals[name]; ok {
			return idx
		}
		idx := len(c.names)
		nonTerminals[name] = idx
		c.names = append(c.names, name)
		return idx
	}
	addNonTerminal("$start")
	for _, def := range g.rules[1:] {
		if g.IsTerminal(def.lhs) {
			return fmt.Errorf("terminal %s used as rule left-hand side", def.lhs)
		}
		addNonTerminal(def.lhs)
	}
	startSym, ok := nonTerminals[start]
	if !ok {
		return fmt.Errorf("start symbol %s has no rules", start)
	}
	c.nSym = len(c.names)

	symbolOf := func(name string) (int, error) {
		if idx, ok := g.terminalIndex[name]; ok {
			return idx, nil
		}
		if idx, ok := nonTerminals[name]; ok {
			return idx, nil
		}
		return 0, fmt.Errorf("undefined symbol %s", name)
	}

	c.rules = make([]rule, len(g.rules))
	c.rules[0] = rule{
		lhs: nonTerminals["$start"],
		rhs: []int{startSym},
	}
	for i, def := range g.rules[1:] {
		r := rule{
			lhs: nonTerminals[def.lhs],
		}
		for _, name := range def.rhs {
			sym, err := symbolOf(name)
			if err != nil {
				return fmt.Errorf("rule %s: %w", def.lhs, err)
			}
			r.rhs = append(r.rhs, sym)
		}
		if def.prec != "" {
			p, ok := g.prec[def.prec]
			if !ok {
				return fmt.Errorf("rule %s: undeclared precedence %s", def.lhs, def.prec)
			}
			r.prec = p
		} else {
			for j := len(r.rhs) - 1; j >= 0; j-- {
				if c.isTerminal(r.rhs[j]) {
					r.prec = g.prec[c.names[r.rhs[j]]]
					break
				}
			}
		}
		c.rules[i+1] = r
	}

	c.rulesOf = make([][]int, c.nSym-c.nT)
	for i, r := range c.rules {
		c.rulesOf[r.lhs-c.nT] = append(c.rulesOf[r.lhs-c.nT], i)
	}
	return nil
}

func (c *compiler) computeFirst() {
	c.nullable = make([]bool, c.nSym)
	c.first = make([]bitset, c.nSym)
	for i := range c.nSym {
		c.first[i] = newBitset(c.laBits())
		if c.isTerminal(i) {
			c.first[i].set(i)
		}
	}
	for changed := true; changed; {
		changed = false
		for _, r := range c.rules {
			allNullable := true
			for _, sym := range r.rhs {
				if c.first[r.lhs].union(c.first[sym]) {
					changed = true
				}
				if !c.nullable[sym] {
					allNullable = false
					break
				}
			}
			if allNullable && !c.nullable[r.lhs] {
				c.nullable[r.lhs] = true
				changed = true
			}
		}
	}
}

func (c *compiler) computeItems() {
	c.itemBase = make([]int, len(c.rules))
	c.suffixLA = make([][]bitset, len(c.rules))
	c.suffixNul = make([][]bool, len(c.rules))
	for i, r := range c.rules {
		c.itemBase[i] = len(c.itemRule)
		for dot := 0; dot <= len(r.rhs); dot++ {
			c.itemRule = append(c.itemRule, i)
			c.itemDot = append(c.itemDot, dot)
		}

		// FIRST and nullability of every suffix
		n := len(r.rhs)
		c.suffixLA[i] = make([]bitset, n+1)
		c.suffixNul[i] = make([]bool, n+1)
		c.suffixLA[i][n] = newBitset(c.laBits())
		c.suffixNul[i][n] = true
		for k := n - 1; k >= 0; k-- {
			set := c.first[r.rhs[k]].clone()
			if c.nullable[r.rhs[k]] {
				set.union(c.suffixLA[i][k+1])
			}
			c.suffixLA[i][k] = set
			c.suffixNul[i][k] = c.nullable[r.rhs[k]] && c.suffixNul[i][k+1]
		}
	}
}

func (c *compiler) symbolAfterDot(item int) (int, bool) {
	r := c.rules[c.itemRule[item]]
	dot := c.itemDot[item]
	if dot >= len(r.rhs) {
		return 0, false
	}
	return r.rhs[dot], true
}

// closureNonTerminals returns the nonterminals whose rules are in the
// closure of kernel, in discovery order.
func (c *compiler) closureNonTerminals(kernel []int) []int {
	seen := make([]bool, c.nSym)
	var ret []int
	var visit func(sym int)
	visit = func(sym int) {
		if c.isTerminal(sym) || seen[sym] {
			return
		}
		seen[sym] = true
		ret = append(ret, sym)
		for _, r := range c.rulesOf[sym-c.nT] {
			if len(c.rules[r].rhs) > 0 {
				visit(c.rules[r].rhs[0])
			}
		}
	}
	for _, item := range kernel {
		if sym, ok := c.symbolAfterDot(item); ok {
			visit(sym)
		}
	}
	return ret
}

func kernelKey(kernel []int) string {
	var sb strings.Builder
	for _, item := range kernel {
		fmt.Fprintf(&sb, "%d,", item)
	}
	return sb.String()
}

func (c *compiler) addState(kernel []int) int {
	key := kernelKey(kernel)
	if idx, ok := c.stateKey[key]; ok {
		return idx
	}
	idx := len(c.states)
	c.states = append(c.states, &state{
		kernel: kernel,
	})
	c.stateKey[key] = idx
	return idx
}

func (c *compiler) buildStates() {
	c.addState([]int{c.itemBase[0]})
	for i := 0; i < len(c.states); i++ {
		s := c.states[i]
		next := map[int][]int{}
		for _, item := range s.kernel {
			if sym, ok := c.symbolAfterDot(item); ok {
				next[sym] = append(next[sym], item+1)
			}
		}
		for _, nt := range c.closureNonTerminals(s.kernel) {
			for _, r := range c.rulesOf[nt-c.nT] {
				if rhs := c.rules[r].rhs; len(rhs) > 0 {
					next[rhs[0]] = append(next[rhs[0]], c.itemBase[r]+1)
				}
			}
		}
		symbols := lo.Keys(next)
		sort.Ints(symbols)
		for _, sym := range symbols {
			kernel := lo.Uniq(next[sym])
			sort.Ints(kernel)
			target := c.addState(kernel)
			s.transSymbols = append(s.transSymbols, sym)
			s.transTargets = append(s.transTargets, target)
		}
	}
}

func (s *state) target(sym int) int {
	idx, ok := slices.BinarySearch(s.transSymbols, sym)
	if !ok {
		return -1
	}
	return s.transTargets[idx]
}

func (s *state) kernelIndex(item int) int {
	idx, ok := slices.BinarySearch(s.kernel, item)
	if !ok {
		panic("item not in kernel")
	}
	return idx
}

// closureLookaheads computes the lookahead set of every nonterminal in the
// closure of a kernel with the given per-item lookaheads.
func (c *compiler) closureLookaheads(kernel []int, kernelLA []bitset) []bitset {
	la := make([]bitset, c.nSym-c.nT)
	var queue []int
	add := func(nt int, set bitset, nullable bool, from bitset) {
		idx := nt - c.nT
		if la[idx] == nil {
			la[idx] = newBitset(c.laBits())
			queue = append(queue, nt)
		}
		changed := la[idx].union(set)
		if nullable && from != nil && la[idx].union(from) {
			changed = true
		}
		if changed && !slices.Contains(queue, nt) {
			queue = append(queue, nt)
		}
	}
	for i, item := range kernel {
		sym, ok := c.symbolAfterDot(item)
		if !ok || c.isTerminal(sym) {
			continue
		}
		r := c.itemRule[item]
		dot := c.itemDot[item]
		add(sym, c.suffixLA[r][dot+1], c.suffixNul[r][dot+1], kernelLA[i])
	}
	for len(queue) > 0 {
		nt := queue[0]
		queue = queue[1:]
		from := la[nt-c.nT]
		for _, r := range c.rulesOf[nt-c.nT] {
			rhs := c.rules[r].rhs
			if len(rhs) == 0 || c.isTerminal(rhs[0]) {
				continue
			}
			add(rhs[0], c.suffixLA[r][1], c.suffixNul[r][1], from)
		}
	}
	return la
}

func (c *compiler) computeLookaheads() {
	for _, s := range c.states {
		s.la = make([]bitset, len(s.kernel))
		s.propagate = make([][]itemRef, len(s.kernel))
		for i := range s.kernel {
			s.la[i] = newBitset(c.laBits())
		}
	}
	c.states[0].la[0].set(0)

	marker := c.marker()
	for _, s := range c.states {
		for ki, item := range s.kernel {
			probe := make([]bitset, len(s.kernel))
			probe[ki] = newBitset(c.laBits())
			probe[ki].set(marker)
			la := c.closureLookaheads(s.kernel, probe)

			if sym, ok := c.symbolAfterDot(item); ok {
				target := s.target(sym)
				ref := itemRef{
					state: target,
					index: c.states[target].kernelIndex(item + 1),
				}
				s.propagate[ki] = append(s.propagate[ki], ref)
			}

			for idx, set := range la {
				if set == nil {
					continue
				}
				for _, r := range c.rulesOf[idx] {
					rhs := c.rules[r].rhs
					if len(rhs) == 0 {
						continue
					}
					target := s.target(rhs[0])
					t := c.states[target]
					ti := t.kernelIndex(c.itemBase[r] + 1)
					if set.has(marker) {
						spontaneous := set.clone()
						spontaneous.clear(marker)
						t.la[ti].union(spontaneous)
						s.propagate[ki] = append(s.propagate[ki], itemRef{
							state: target,
							index: ti,
						})
					} else {
						t.la[ti].union(set)
					}
				}
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for _, s := range c.states {
			for ki, refs := range s.propagate {
				for _, ref := range refs {
					if c.states[ref.state].la[ref.index].union(s.la[ki]) {
						changed = true
					}
				}
			}
		}
	}
}

const (
	actionNone = iota
	actionShift
	actionReduce
	actionError
)

type cell struct {
	kind   int
	target int
	rule   int
}

func (c *compiler) production(r int) string {
	rl := c.rules[r]
	parts := []string{c.names[rl.lhs], "->"}
	for _, sym := range rl.rhs {
		parts = append(parts, c.names[sym])
	}
	return strings.Join(parts, " ")
}

// reductions returns, per terminal, the rules that may be reduced in s.
func (c *compiler) reductions(s *state) map[int][]int {
	ret := map[int][]int{}
	add := func(r int, la bitset) {
		la.each(func(sym int) {
			if sym >= c.nT || slices.Contains(ret[sym], r) {
				return
			}
			ret[sym] = append(ret[sym], r)
		})
	}
	for ki, item := range s.kernel {
		if _, ok := c.symbolAfterDot(item); !ok {
			add(c.itemRule[item], s.la[ki])
		}
	}
	closure := c.closureLookaheads(s.kernel, s.la)
	for idx, set := range closure {
		if set == nil {
			continue
		}
		for _, r := range c.rulesOf[idx] {
			if len(c.rules[r].rhs) == 0 {
				add(r, set)
			}
		}
	}
	for _, rules := range ret {
		sort.Ints(rules)
	}
	return ret
}

func (c *compiler) buildTables() (*parsers.Tables, *Report, error) {
	report := &Report{
		Terminals:    c.nT,
		NonTerminals: c.nSym - c.nT,
		Rules:        len(c.rules),
		States:       len(c.states),
	}

	// explicit action rows in terms of original state numbers
	rows := make([]map[int]cell, len(c.states))
	defaults := make([]int, len(c.states))
	for si, s := range c.states {
		row := map[int]cell{}
		for i, sym := range s.transSymbols {
			if c.isTerminal(sym) {
				row[sym] = cell{
					kind:   actionShift,
					target: s.transTargets[i],
				}
			}
		}

		reds := c.reductions(s)
		symbols := lo.Keys(reds)
		sort.Ints(symbols)
		for _, sym := range symbols {
			if sym == 1 {
				// the error symbol is only ever shifted
				continue
			}
			rules := reds[sym]
			r := rules[0]
			if len(rules) > 1 {
				report.ReduceReduce += len(rules) - 1
				report.Conflicts = append(report.Conflicts, fmt.Sprintf(
					"state %d: reduce/reduce conflict on %s between %s",
					si, c.names[sym],
					strings.Join(lo.Map(rules, func(r int, _ int) string {
						return "(" + c.production(r) + ")"
					}), " and "),
				))
			}
			existing, ok := row[sym]
			if !ok {
				row[sym] = cell{
					kind: actionReduce,
					rule: r,
				}
				continue
			}
			// shift/reduce
			tokPrec, tokOK := c.g.prec[c.names[sym]]
			rulePrec := c.rules[r].prec
			if !tokOK || rulePrec.level == 0 {
				report.ShiftReduce++
				report.Conflicts = append(report.Conflicts, fmt.Sprintf(
					"state %d: shift/reduce conflict on %s with (%s), shifting",
					si, c.names[sym], c.production(r),
				))
				continue
			}
			switch {
			case tokPrec.level > rulePrec.level:
				row[sym] = existing
			case tokPrec.level < rulePrec.level:
				row[sym] = cell{kind: actionReduce, rule: r}
			default:
				switch tokPrec.assoc {
				case AssocLeft:
					row[sym] = cell{kind: actionReduce, rule: r}
				case AssocRight:
					row[sym] = existing
				case AssocNonassoc:
					row[sym] = cell{kind: actionError}
				default:
					report.ShiftReduce++
					report.Conflicts = append(report.Conflicts, fmt.Sprintf(
						"state %d: shift/reduce conflict on %s with (%s), shifting",
						si, c.names[sym], c.production(r),
					))
				}
			}
		}

		// the most frequent reduction becomes the default
		counts := map[int]int{}
		for _, cl := range row {
			if cl.kind == actionReduce && cl.rule != 0 {
				counts[cl.rule]++
			}
		}
		defaults[si] = UnexpectedTokenRule
		best := 0
		for r, n := range counts {
			if n > best || n == best && r < defaults[si] {
				best = n
				defaults[si] = r
			}
		}
		if defaults[si] != UnexpectedTokenRule {
			for sym, cl := range row {
				if cl.kind == actionReduce && cl.rule == defaults[si] {
					delete(row, sym)
				}
			}
		}
		rows[si] = row
	}

	// states that only reduce are folded into the transitions leading to them
	newID := make([]int, len(c.states))
	numNonLeaf := 0
	for si, s := range c.states {
		if si != 0 && len(s.transSymbols) == 0 && len(rows[si]) == 0 && defaults[si] != UnexpectedTokenRule {
			newID[si] = -1
			continue
		}
		newID[si] = numNonLeaf
		numNonLeaf++
	}
	for si := range c.states {
		if newID[si] == -1 {
			newID[si] = numNonLeaf + defaults[si]
		}
	}
	report.NonLeafStates = numNonLeaf

	t := &parsers.Tables{
		ActionBase:          make([]int, numNonLeaf),
		ActionDefault:       make([]int, numNonLeaf),
		GotoBase:            make([]int, c.nSym-c.nT),
		GotoDefault:         make([]int, c.nSym-c.nT),
		RuleToNonTerminal:   make([]int, len(c.rules)),
		RuleToLength:        make([]int, len(c.rules)),
		SymbolToName:        slices.Clone(c.names[:c.nT]),
		TokenToSymbol:       make([]int, tokens.NumKinds),
		NumNonLeafStates:    numNonLeaf,
		YY2TBLSTATE:         0,
		ErrorSymbol:         1,
		InvalidSymbol:       c.nT,
		DefaultAction:       DefaultAction,
		UnexpectedTokenRule: UnexpectedTokenRule,
	}

	// actions
	var packer tablePacker
	rowBase := map[string]int{}
	usedBase := map[int]bool{}
	for si := range c.states {
		id := newID[si]
		if id >= numNonLeaf {
			continue
		}
		t.ActionDefault[id] = defaults[si]
		row := rows[si]
		if len(row) == 0 {
			continue
		}
		symbols := lo.Keys(row)
		sort.Ints(symbols)
		values := make([]int, len(symbols))
		for i, sym := range symbols {
			switch cl := row[sym]; cl.kind {
			case actionShift:
				values[i] = newID[cl.target]
			case actionReduce:
				values[i] = -cl.rule
			case actionError:
				values[i] = -UnexpectedTokenRule
			}
		}
		key := fmt.Sprint(symbols, values)
		if base, ok := rowBase[key]; ok {
			t.ActionBase[id] = base
			continue
		}
		base := packer.place(symbols, values, 1, usedBase)
		usedBase[base] = true
		rowBase[key] = base
		t.ActionBase[id] = base
	}
	t.Action, t.ActionCheck = packer.values, packer.checks
	report.ActionSize = len(t.Action)

	// gotos
	var gotoPacker tablePacker
	for nt := c.nT; nt < c.nSym; nt++ {
		idx := nt - c.nT
		targets := map[int]int{}
		for si, s := range c.states {
			if newID[si] >= numNonLeaf {
				continue
			}
			if target := s.target(nt); target >= 0 {
				targets[newID[si]] = newID[target]
			}
		}
		if len(targets) == 0 {
			t.GotoDefault[idx] = -1
			continue
		}
		counts := map[int]int{}
		for _, target := range targets {
			counts[target]++
		}
		best := -1
		for target, n := range counts {
			if best == -1 || n > counts[best] || n == counts[best] && target < best {
				best = target
			}
		}
		t.GotoDefault[idx] = best
		var states, values []int
		for _, from := range lo.Keys(targets) {
			if targets[from] != best {
				states = append(states, from)
			}
		}
		if len(states) == 0 {
			continue
		}
		sort.Ints(states)
		for _, from := range states {
			values = append(values, targets[from])
		}
		t.GotoBase[idx] = gotoPacker.placeChecked(states, values, 0, idx)
	}
	t.Goto, t.GotoCheck = gotoPacker.values, gotoPacker.checks
	report.GotoSize = len(t.Goto)

	for i, r := range c.rules {
		t.RuleToNonTerminal[i] = r.lhs - c.nT
		t.RuleToLength[i] = len(r.rhs)
		t.Productions = append(t.Productions, c.production(i))
	}

	for i := range t.TokenToSymbol {
		t.TokenToSymbol[i] = c.nT
	}
	for sym, name := range t.SymbolToName {
		if sym == 1 {
			continue
		}
		if kind, ok := tokens.KindByName(name); ok && int(kind) < len(t.TokenToSymbol) {
			t.TokenToSymbol[kind] = sym
		}
	}

	if err := t.Validate(); err != nil {
		return nil, nil, err
	}
	return t, report, nil
}

// tablePacker overlays sparse rows into one array.
type tablePacker struct {
	values []int
	checks []int
}

func (p *tablePacker) fits(base int, keys []int) bool {
	for _, k := range keys {
		idx := base + k
		if idx < len(p.checks) && p.checks[idx] != -1 {
			return false
		}
	}
	return true
}

func (p *tablePacker) write(base int, keys []int, values []int, check func(key int) int) {
	for i, k := range keys {
		idx := base + k
		for len(p.checks) <= idx {
			p.checks = append(p.checks, -1)
			p.values = append(p.values, 0)
		}
		p.checks[idx] = check(k)
		p.values[idx] = values[i]
	}
}

// place finds the lowest unused base for an action row. The check of every
// slot is its symbol.
func (p *tablePacker) place(symbols []int, values []int, minBase int, used map[int]bool) int {
	base := minBase
	for used[base] || !p.fits(base, symbols) {
		base++
	}
	p.write(base, symbols, values, func(key int) int {
		return key
	})
	return base
}

// placeChecked places a goto row, marking its slots with check.
func (p *tablePacker) placeChecked(states []int, values []int, minBase int, check int) int {
	base := minBase
	for !p.fits(base, states) {
		base++
	}
	p.write(base, states, values, func(int) int {
		return check
	})
	return base
}
