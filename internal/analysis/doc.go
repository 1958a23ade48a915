// Package analysis implements the deterministic heart of the reputation
// service: structural inspection of a URL, the rule-based fallback scorer used
// when no classifier is loaded, and the sensitivity adjustment engine that can
// override a classifier verdict when strong phishing signals are present.
//
// Everything in this package is pure and side-effect free. All rule tables and
// thresholds are carried by a Rules value so callers (and tests) can tune them
// without global state. The fallback scorer and the sensitivity engine use
// deliberately separate keyword/TLD tables: they are two independently tunable
// rule sets, not an accidental duplication.
package analysis
