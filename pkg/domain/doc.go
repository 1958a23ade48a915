// Package domain holds the core entities of the URL reputation service:
// verdicts, risk levels, observations and assembled scan results. The types
// here carry no infrastructure dependencies so every other package can share
// them freely.
package domain
