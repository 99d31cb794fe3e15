// symbols/symbol_table.go - Scope tree entry point
//
// The package is split into focused files:
// - symbol_table_core.go: Tree arena, SymbolTable struct, scope kinds
// - symbol_table_init.go: global root and built-in declarations
// - symbol_table_operations.go: find/add/from and the own-vs-inherited queries
// - symbol_table_resolution.go: dotted-name resolution through modules and namespaces
// - symbol_table_advanced.go: enumeration, reset and clear

package symbols
