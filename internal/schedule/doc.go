// Package schedule assigns lesson plans to the class days of a term.
//
// Lessons come from a markdown file where each "## " heading starts a lesson. Class
// days follow a weekly meeting pattern between the first and last class day, minus
// holidays. Assign pairs them in order and reports any mismatch as warnings: days
// without a lesson get an empty placeholder, and lessons without a day are returned
// as dropped.
package schedule
