package schedule

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// headingPrefix starts a new lesson
const headingPrefix = "## "

// Lesson is one content block of the lesson file
type Lesson struct {
	Title string
	Body  string
}

// ReadLessons splits a markdown lesson file on "## " headings. The heading text
// becomes the title and everything up to the next heading the body. Text before
// the first heading is ignored.
func ReadLessons(r io.Reader) ([]Lesson, error) {
	lessons := make([]Lesson, 0)
	var current *Lesson
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		lessons = append(lessons, *current)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, headingPrefix) {
			flush()
			current = &Lesson{Title: strings.TrimSpace(strings.TrimPrefix(line, headingPrefix))}
			body = body[:0]
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lessons: %w", err)
	}
	flush()

	return lessons, nil
}
