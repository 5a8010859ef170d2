package aocscript

// evalAssignment stores the value and leaves it on the stack as the result
func (e *Executor) evalAssignment(n *Assignment) error {
	v, err := e.evalValue(n.Value)
	if err != nil {
		return err
	}
	e.env.Set(n.Name, v)
	e.logger.DebugCat(CatVariable, "%s = %s", n.Name, v.Format())
	e.env.Push(v)
	return nil
}

// evalListIndex evaluates an index expression, which must be a
// non-negative Integer
func (e *Executor) evalListIndex(n Node, index Node) (int, error) {
	if err := e.eval(index); err != nil {
		return 0, err
	}
	v, err := e.popKind(n, KindInteger, "index")
	if err != nil {
		return 0, err
	}
	if v.Int() < 0 {
		return 0, runtimeErrorf(n.Pos(), "index %d must not be negative", v.Int())
	}
	return int(v.Int()), nil
}

func (e *Executor) evalIndex(n *ArrayIndex) error {
	index, err := e.evalListIndex(n, n.Index)
	if err != nil {
		return err
	}

	if list, ok := e.env.List(n.Name); ok {
		v, err := list.Get(index)
		if err != nil {
			return runtimeErrorf(n.Pos(), "%v", err)
		}
		e.env.Push(v)
		return nil
	}

	v, ok := e.env.Get(n.Name)
	if !ok {
		return e.unknownName(n, n.Name)
	}
	if v.Kind() != KindText {
		return runtimeErrorf(n.Pos(), "cannot index %s variable %s", v.Kind(), n.Name)
	}
	s := v.Text()
	if index >= len(s) {
		return runtimeErrorf(n.Pos(), "index %d out of range for %s of size %d", index, n.Name, len(s))
	}
	e.env.Push(TextValue(s[index : index+1]))
	return nil
}

func (e *Executor) evalSize(n *ArraySize) error {
	if list, ok := e.env.List(n.Name); ok {
		e.env.Push(IntegerValue(int32(list.Len())))
		return nil
	}
	v, ok := e.env.Get(n.Name)
	if !ok {
		return e.unknownName(n, n.Name)
	}
	if v.Kind() != KindText {
		return runtimeErrorf(n.Pos(), "cannot take size of %s variable %s", v.Kind(), n.Name)
	}
	e.env.Push(IntegerValue(int32(len(v.Text()))))
	return nil
}

// evalIndexedAssignment replaces one list element or one character of a
// string variable
func (e *Executor) evalIndexedAssignment(n *IndexedAssignment) error {
	index, err := e.evalListIndex(n, n.Index)
	if err != nil {
		return err
	}
	v, err := e.evalValue(n.Value)
	if err != nil {
		return err
	}

	if list, ok := e.env.List(n.Name); ok {
		if err := list.Set(index, v); err != nil {
			return runtimeErrorf(n.Pos(), "%v", err)
		}
		e.logger.DebugCat(CatList, "%s[%d] = %s -> %s", n.Name, index, v.Format(), list)
		e.env.Push(v)
		return nil
	}

	current, ok := e.env.Get(n.Name)
	if !ok {
		return e.unknownName(n, n.Name)
	}
	if current.Kind() != KindText {
		return runtimeErrorf(n.Pos(), "cannot index %s variable %s", current.Kind(), n.Name)
	}
	if v.Kind() != KindText {
		return runtimeErrorf(n.Pos(), "cannot store %s value %s in string %s", v.Kind(), v.Format(), n.Name)
	}
	s := current.Text()
	if index >= len(s) {
		return runtimeErrorf(n.Pos(), "index %d out of range for %s of size %d", index, n.Name, len(s))
	}
	updated := TextValue(s[:index] + v.Text() + s[index+1:])
	e.env.Set(n.Name, updated)
	e.logger.DebugCat(CatVariable, "%s[%d] = %s -> %s", n.Name, index, v.Format(), updated.Format())
	e.env.Push(v)
	return nil
}

func (e *Executor) evalAppend(n *ListAppend) error {
	v, err := e.evalValue(n.Value)
	if err != nil {
		return err
	}
	list, ok := e.env.List(n.Name)
	if !ok {
		return runtimeErrorf(n.Pos(), "list %s has not been created%s", n.Name, didYouMean(n.Name, e.env.ListNames()))
	}
	if err := list.Append(v); err != nil {
		return runtimeErrorf(n.Pos(), "%v", err)
	}
	e.logger.DebugCat(CatList, "%s << %s (size %d)", n.Name, v.Format(), list.Len())
	e.env.Push(v)
	return nil
}

// evalListDeclare creates the list, emptying it when the declaration runs
// again inside a loop
func (e *Executor) evalListDeclare(n *ListDeclare) error {
	list := e.env.DeclareList(n.Name, n.Elem, n.Sorted)
	e.logger.DebugCat(CatList, "declared %s", list.Describe())
	e.env.Push(Value{})
	return nil
}
