// Package lang provides the lexer, parser and value model of a small
// stack-based scripting language.
//
// Pipeline: source → Lex → Parse → []Stmt, evaluated by package interp.
package lang
