// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package llm

const extractRecipePrompt = `
You are given the text content of a web page that could not be parsed as a
recipe. Extract the recipe title and its ingredient lines.

- Return every ingredient as a single line including its quantity, e.g.
  "2 cups flour".
- Do not include instructions, equipment, or nutrition information.
- If the page contains no recipe, return an empty ingredients array.
`

const parseIngredientsPrompt = `
You decompose recipe ingredient lines into structured parts. For every input
line, return an object with:

- "name": the ingredient name without quantity or unit
- "quantity": the amount as a number, or null if the line has none
- "unit": the unit of measure exactly as written, or null if the line has none

Return strictly a JSON object of the form {"ingredients": [...]} with one
entry per input line, in the same order as the input. Do not wrap the
response in markdown code blocks and do not include any other text.
`

const stripDescriptorsInstruction = `
Additionally, remove preparation and quality descriptors from every "name" so
only the bare food remains. Descriptors to remove include: %s.
`