// Package awards mines win, nomination, and Oscar counts out of free-text
// awards summaries (the OMDb "Awards" field) and converts them into the
// small additive bonus the weighting engine applies.
package awards
