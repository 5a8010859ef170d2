package aocscript

// binding remembers a loop variable's value from before the loop started
type binding struct {
	name  string
	value Value
	had   bool
}

func (e *Executor) saveBindings(names ...string) []binding {
	saved := make([]binding, len(names))
	for i, name := range names {
		v, ok := e.env.Get(name)
		saved[i] = binding{name: name, value: v, had: ok}
	}
	return saved
}

// restoreBindings puts back outer loop values, or erases names that were
// unbound before the loop
func (e *Executor) restoreBindings(saved []binding) {
	for _, b := range saved {
		if b.had {
			e.env.Set(b.name, b.value)
		} else {
			e.env.Delete(b.name)
		}
	}
}

// evalIf runs one branch. Branches do not consume pending breaks; the
// enclosing loop sees them after the if statement completes.
func (e *Executor) evalIf(n *If) error {
	if err := e.eval(n.Condition); err != nil {
		return err
	}
	cond, err := e.popKind(n, KindInteger, "if condition")
	if err != nil {
		return err
	}

	branch := n.Else
	if cond.Int() != 0 {
		branch = n.Then
	}
	e.logger.TraceCat(CatFlow, "if %s -> %t", n.Condition, cond.Int() != 0)
	for _, stmt := range branch {
		if err := e.ExecuteStatement(stmt); err != nil {
			return err
		}
	}
	e.env.Push(Value{})
	return nil
}

// runLoopBody executes one pass of a loop body. stop is true when a break
// was consumed and the loop must end.
func (e *Executor) runLoopBody(body []*Statement) (stop bool, err error) {
	for _, stmt := range body {
		if err := e.ExecuteStatement(stmt); err != nil {
			return false, err
		}
		if e.env.ConsumeBreak() {
			return true, nil
		}
	}
	return e.env.ConsumeBreak(), nil
}

func (e *Executor) evalLoopTimes(n *LoopTimes) error {
	if err := e.eval(n.Count); err != nil {
		return err
	}
	count, err := e.popKind(n, KindInteger, "loop count")
	if err != nil {
		return err
	}

	saved := e.saveBindings(IterName)
	defer e.restoreBindings(saved)

	e.logger.DebugCat(CatFlow, "loop %d times", count.Int())
	for i := int32(0); i < count.Int(); i++ {
		e.env.Set(IterName, IntegerValue(i))
		stop, err := e.runLoopBody(n.Body)
		if err != nil {
			return err
		}
		if stop {
			e.logger.DebugCat(CatFlow, "loop broken at iteration %d", i)
			break
		}
	}
	e.env.Push(Value{})
	return nil
}

// evalLoopChars iterates a declared list's elements, or the characters of a
// string variable
func (e *Executor) evalLoopChars(n *LoopChars) error {
	var items []Value
	if list, ok := e.env.List(n.Name); ok {
		items = list.Values()
	} else {
		v, ok := e.env.Get(n.Name)
		if !ok {
			return e.unknownName(n, n.Name)
		}
		if v.Kind() != KindText {
			return runtimeErrorf(n.Pos(), "cannot iterate %s variable %s; expected a list or STRING", v.Kind(), n.Name)
		}
		s := v.Text()
		items = make([]Value, len(s))
		for i := 0; i < len(s); i++ {
			items[i] = TextValue(s[i : i+1])
		}
	}

	saved := e.saveBindings(CharName, IterName)
	defer e.restoreBindings(saved)

	e.logger.DebugCat(CatFlow, "loop over %d items of %s", len(items), n.Name)
	for i, item := range items {
		e.env.Set(IterName, IntegerValue(int32(i)))
		e.env.Set(CharName, item)
		stop, err := e.runLoopBody(n.Body)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}
	e.env.Push(Value{})
	return nil
}

// evalLoopLines iterates the loaded input. With nothing loaded there are no
// lines and the body never runs.
func (e *Executor) evalLoopLines(n *LoopLines) error {
	lines := e.env.InputLines()

	saved := e.saveBindings(LineName, IterName)
	defer e.restoreBindings(saved)

	e.logger.DebugCat(CatFlow, "loop over %d input lines", len(lines))
	for i, line := range lines {
		e.env.Set(IterName, IntegerValue(int32(i)))
		e.env.Set(LineName, TextValue(line))
		stop, err := e.runLoopBody(n.Body)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}
	e.env.Push(Value{})
	return nil
}
