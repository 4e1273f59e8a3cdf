package lang

// binaryFuncs dispatches every value-producing BinaryOp. Swap only reorders
// the stack and is handled by the interpreter.
var binaryFuncs = map[BinaryOp]func(first, second Literal) (Literal, error){
	Add:   Literal.Add,
	Sub:   Literal.Sub,
	Mul:   Literal.Mul,
	Div:   Literal.Div,
	Mod:   Literal.Mod,
	And:   Literal.And,
	Or:    Literal.Or,
	Eq:    func(a, b Literal) (Literal, error) { return Bool(a.Equal(b)), nil },
	NotEq: func(a, b Literal) (Literal, error) { return Bool(!a.Equal(b)), nil },
	GT:    ordering(func(c int) bool { return c > 0 }),
	GTEq:  ordering(func(c int) bool { return c >= 0 }),
	LT:    ordering(func(c int) bool { return c < 0 }),
	LTEq:  ordering(func(c int) bool { return c <= 0 }),
}

// ordering adapts Compare into an operator. Unordered numbers (NaN) make
// every ordering comparison false.
func ordering(holds func(int) bool) func(a, b Literal) (Literal, error) {
	return func(a, b Literal) (Literal, error) {
		c, ok, err := a.Compare(b)
		if err != nil {
			return Literal{}, err
		}
		return Bool(ok && holds(c)), nil
	}
}

// Apply evaluates `first op second`. It returns an InvalidOperation error when
// the operand kinds are not accepted by op.
func Apply(op BinaryOp, first, second Literal) (Literal, error) {
	fn, ok := binaryFuncs[op]
	if !ok {
		return Literal{}, errInvalidOperation("%s does not produce a value", op.Name())
	}
	return fn(first, second)
}
