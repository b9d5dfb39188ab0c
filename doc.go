/*
Package tally provides an interactive calculator engine for Go applications.

It implements the full calculation core of a pocket calculator — operand and
operator accumulation, chained left-to-right evaluation, a scientific
expression evaluator with standard operator precedence, display formatting,
and bounded persistent history — while leaving all presentation (layout,
themes, sound, keyboard wiring) to the caller.

# Overview

tally is command-driven: a front end issues one keystroke-level command at a
time to an Engine, which updates its state and exposes a read-only snapshot
for rendering. History and settings live in independent stores the engine
writes through a small persistence port, so the whole system is testable
without any host environment.

# Core Architecture

  - Engine - the calculator state machine (display, previous value, pending
    operator, awaiting-new-operand flag)
  - evalExpression - tokenizer and precedence-climbing evaluator over a fixed
    grammar (numbers, + - * / ** ( ), named unary functions, pi and e)
  - Format - presentation-only number formatting (exponential notation beyond
    1e15 or below 1e-6, capped decimal digits)
  - History - bounded most-recent-first log of completed evaluations
  - Settings - boolean feature toggles with defaults-merge loading
  - Store - the persistence port, with afero-backed file and bbolt backends

# Basic Usage

Creating an engine with persistent history and settings:

	store, err := tally.NewFileStore(".tally")
	if err != nil {
	    log.Fatalf("Failed to open store: %v", err)
	}

	history := tally.OpenHistory(store)
	settings := tally.OpenSettings(store)
	engine := tally.New(
	    tally.WithHistory(history),
	    tally.WithSettings(settings),
	)

Issuing commands and rendering:

	engine.InputDigit("2")
	engine.InputOperator(tally.OpAdd)
	engine.InputDigit("3")
	engine.Evaluate()

	state := engine.State()
	fmt.Println(tally.Format(state.Display)) // "5"

Scientific entry builds an expression in the display and evaluates it with
full precedence:

	engine.InputFunction("sqrt")
	engine.InputDigit("1")
	engine.InputDigit("6")
	engine.InputParen(")")
	engine.Evaluate() // display: "4"

# Error Recovery

An evaluation failure (malformed expression, non-finite result, factorial out
of range) switches the display to the "Error" marker and schedules an
automatic reset back to the initial state after a fixed delay. Any command
issued before the delay elapses cancels the pending reset. Persistence
failures are never surfaced on the calculation path; stores fall back to
defaults or an empty history when stored data is missing or malformed.

# Concurrency

Each exported Engine command is a single atomic state transition guarded by
one mutex, so a multi-threaded host gets serialized command processing for
free. Stores guard their own state the same way.
*/
package tally
