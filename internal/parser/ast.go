package parser

import "lox-lang/impl/internal/token"

// Ordered JSON fields are ensured by struct field order.

// Program is the root AST node.
type Program struct {
	Statements []Statement `json:"statements"`
	Type       string      `json:"type"`
}

// Statement is a sealed sum type; the variants below are the only members.
type Statement interface{ isStatement() }

type ExpressionStmt struct {
	Type  string `json:"type"`
	Value Expr   `json:"value"`
}

func (ExpressionStmt) isStatement() {}

type PrintStmt struct {
	Type  string `json:"type"`
	Value Expr   `json:"value"`
}

func (PrintStmt) isStatement() {}

// VarStmt declares Name in the current scope. Initializer is nil when the
// declaration has no "= expr" part.
type VarStmt struct {
	Initializer Expr        `json:"initializer"`
	Name        token.Token `json:"name"`
	Type        string      `json:"type"`
}

func (VarStmt) isStatement() {}

type BlockStmt struct {
	Statements []Statement `json:"statements"`
	Type       string      `json:"type"`
}

func (BlockStmt) isStatement() {}

// Expr is a sealed sum type for expressions.
type Expr interface{ isExpr() }

// Literal holds a float64, string, bool or nil.
type Literal struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

func (Literal) isExpr() {}

type Grouping struct {
	Inner Expr   `json:"inner"`
	Type  string `json:"type"`
}

func (Grouping) isExpr() {}

type Unary struct {
	Operand  Expr        `json:"operand"`
	Operator token.Token `json:"operator"`
	Type     string      `json:"type"`
}

func (Unary) isExpr() {}

type Binary struct {
	Left     Expr        `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expr        `json:"right"`
	Type     string      `json:"type"`
}

func (Binary) isExpr() {}

type Variable struct {
	Name token.Token `json:"name"`
	Type string      `json:"type"`
}

func (Variable) isExpr() {}

type Assign struct {
	Name  token.Token `json:"name"`
	Type  string      `json:"type"`
	Value Expr        `json:"value"`
}

func (Assign) isExpr() {}

// Constructors keep the Type discriminator in one place.

func NewLiteral(v any) Literal { return Literal{Type: "Literal", Value: v} }

func NewGrouping(inner Expr) Grouping { return Grouping{Inner: inner, Type: "Grouping"} }

func NewUnary(op token.Token, operand Expr) Unary {
	return Unary{Operand: operand, Operator: op, Type: "Unary"}
}

func NewBinary(left Expr, op token.Token, right Expr) Binary {
	return Binary{Left: left, Operator: op, Right: right, Type: "Binary"}
}

func NewVariable(name token.Token) Variable { return Variable{Name: name, Type: "Variable"} }

func NewAssign(name token.Token, value Expr) Assign {
	return Assign{Name: name, Type: "Assignment", Value: value}
}

func NewExpressionStmt(e Expr) ExpressionStmt { return ExpressionStmt{Type: "Expression", Value: e} }

func NewPrintStmt(e Expr) PrintStmt { return PrintStmt{Type: "Print", Value: e} }

func NewVarStmt(name token.Token, init Expr) VarStmt {
	return VarStmt{Initializer: init, Name: name, Type: "Var"}
}

func NewBlockStmt(stmts []Statement) BlockStmt { return BlockStmt{Statements: stmts, Type: "Block"} }
