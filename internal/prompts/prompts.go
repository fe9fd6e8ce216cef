package prompts

// ResumeAnalysis is the ATS-style analysis prompt. The model's answer is
// relayed to the caller unparsed; the section headers below only shape the
// text, nothing downstream depends on them.
const ResumeAnalysis = `You are an expert ATS (Applicant Tracking System) analyzer. Analyze this resume and provide detailed feedback in the following format:

OVERALL SCORE: [Score out of 100]

KEY STRENGTHS:
- [Strength 1]
- [Strength 2]
- [Strength 3]

AREAS FOR IMPROVEMENT:
- [Area 1]
- [Area 2]
- [Area 3]

KEYWORD OPTIMIZATION:
- Missing Important Keywords: [List keywords]
- Suggested Keywords to Add: [List keywords]

FORMAT AND STRUCTURE:
- [Feedback on format]
- [Feedback on structure]
- [Feedback on readability]

RECOMMENDATIONS:
1. [Specific recommendation 1]
2. [Specific recommendation 2]
3. [Specific recommendation 3]

Resume content to analyze:
%s`

// CareerRoadmap builds a milestone-based learning path for a target role.
const CareerRoadmap = `As a career mentor, create a detailed roadmap for someone who wants to become a %s. Their current skills are: %s. Please provide:
1. A structured learning path with 5 major milestones
2. For each milestone, list 3-4 specific goals that are measurable and achievable
3. Recommended resources or certifications for each milestone
4. Estimated time to achieve each milestone
Format the response in a clear, structured way that can be easily parsed into sections. Keep the response concise and focused on actionable steps.`

// ProjectPlan breaks a described project into phases with tasks and
// deliverables.
const ProjectPlan = `Create a detailed project plan for the following project:
Title: %s
Description: %s
Break down the project into phases. For each phase include:
1. Phase title
2. List of specific tasks to complete
3. Expected deliverables
4. Time estimate
Format the response with clear section headers for each phase, using "Phase 1:", "Phase 2:", etc.
Include tasks as numbered lists.
List deliverables under a "Deliverables:" section.
Include time estimate under "Time Estimate:".
Keep the phases focused and actionable.`
