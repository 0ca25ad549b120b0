// Package rpn implements a stack calculator with exact decimal arithmetic.
//
// Input is either algebraic, like "2(3 + $x)^2", or a sequence of RPN
// commands, like "2 3 $x add 2 power multiply". Algebraic input is lexed and
// converted to RPN with the shunting-yard algorithm, so both forms end up as
// the same commands executed one at a time by an Engine.
//
// Numbers are decimals rather than binary floats, so 0.1 + 0.2 is 0.3. A few
// named constants keep their identity on the stack: "#pi 2 divide" is the
// constant π/2 rather than 1.5707963267948966, and sin of it is exactly 1.
//
// An Engine also keeps variables and a bounded undo/redo history of full
// snapshots of its stack and variables.
//
package rpn
