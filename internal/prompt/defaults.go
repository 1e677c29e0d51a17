package prompt

import "interview_prep_backend/internal/model"

// 内置模板。可以通过 prompts.path 指向的 YAML 文件覆盖。
var defaultTemplates = map[model.OperationKind]string{
	model.OpSubtopics: "Break down the role of a {job_role} into 6-8 key interview subtopics " +
		"for a {experience_level} candidate. Return the result as a JSON object " +
		"with a 'subtopics' key containing a list of strings. Example: " +
		`{{"subtopics": ["Data Structures", "System Design", "Databases"]}}`,

	model.OpValidation: "Validate the following subtopics for a {job_role} interview: {subtopics}. " +
		"Are they relevant and logically grouped? Provide feedback or corrections.",

	model.OpRefinement: `Based on the following feedback: "{feedback}", ` +
		"refine the subtopics for a {job_role} interview. " +
		"The original subtopics were: {subtopics}. " +
		"Return only a JSON object with a 'refined_subtopics' key containing a list of strings. " +
		`Example: {{"refined_subtopics": ["Classroom Management", "Lesson Planning", "Student Engagement"]}}`,

	model.OpCategorization: "Categorize the following interview subtopics into one of these categories:\n" +
		"- Technical Skills\n" +
		"- Soft Skills\n" +
		"- Advanced Topics\n" +
		"- General Skills\n\n" +
		"Subtopics: {subtopics}\n\n" +
		"Return the result as a JSON object with each category as a key and a list of subtopics as values.",

	model.OpQuestions: "Generate 7 {question_type} interview questions for a {experience_level} " +
		"{job_role} under the topic '{subtopic}'. Each question should:\n" +
		"- Be answerable in 5-10 minutes\n" +
		"- Be open-ended but focused\n" +
		"Avoid take-home project-style prompts. Format the output as a numbered list. " +
		"**Return ONLY the 7 questions in a numbered list with no introduction, explanation.**",

	model.OpGrading: "Here's the interview question:\n\n{question}\n\nCandidate's answer:\n\n{answer}\n\n" +
		"Please provide constructive feedback and a score out of 10. " +
		"End your response with a line of the form \"Score: <number>\".\n" +
		"**Don't include phrases like 'I'm happy to help' in your response**",
}
