package generator

import (
	"fmt"
	"strings"
)

// buildPrompt renders the instruction sent to the text-generation
// collaborator. It embeds the request parameters and describes the exact
// XML grammar the response must follow. The randomize-position instruction
// is kept even though option order is re-shuffled server-side; it keeps the
// model from front-loading correct answers and degrading distractors.
func buildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("You are an MLB expert assistant creating learning content about baseball.\n\n")

	b.WriteString("<parameters>\n")
	fmt.Fprintf(&b, "  <topic>%s</topic>\n", req.Topic)
	fmt.Fprintf(&b, "  <concept>%s</concept>\n", req.Concept)
	fmt.Fprintf(&b, "  <difficulty>%d</difficulty>\n", req.Difficulty)
	fmt.Fprintf(&b, "  <numFlashcards>%d</numFlashcards>\n", req.Count)
	b.WriteString("</parameters>\n\n")

	b.WriteString("<instructions>\n")
	fmt.Fprintf(&b, "  Create exactly %d flashcards and %d corresponding practice questions about %s in baseball.\n", req.Count, req.Count, req.Concept)
	b.WriteString("  - Each flashcard should have a term and definition\n")
	b.WriteString("  - Each question should test understanding of a flashcard's content\n")
	b.WriteString("  - Questions should be multiple choice with 4 options\n")
	b.WriteString("  - The correct answer should be randomly placed in a different position for each question\n")
	b.WriteString("  - Avoid always putting the correct answer in the same position\n")
	fmt.Fprintf(&b, "  - Difficulty level %d (0=beginner, 1=intermediate, 2=advanced)\n", req.Difficulty)
	fmt.Fprintf(&b, "  - Keep content focused specifically on %s\n", req.Concept)
	b.WriteString("  - Make sure definitions are clear and concise\n")
	b.WriteString("</instructions>\n\n")

	b.WriteString(`<output_format>
  <flashcards>
    [For each flashcard]:
    <flashcard>
      <term>The concept or term</term>
      <definition>Clear, one-sentence definition</definition>
    </flashcard>
  </flashcards>

  <questions>
    [For each question]:
    <question>
      <prompt>The question text</prompt>
      <options>
        <option correct="true|false">Answer 1</option>
        <option correct="true|false">Answer 2</option>
        <option correct="true|false">Answer 3</option>
        <option correct="true|false">Answer 4</option>
      </options>
    </question>
  </questions>
</output_format>

Respond with the flashcards and questions sections only, following this exact XML structure.`)

	return b.String()
}
