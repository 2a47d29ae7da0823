package problem

import "fmt"

// Fallback builds a deterministic, schema-valid problem for the given kind
// and slot index. It performs no I/O and cannot fail: when generation
// exhausts its attempt budget, this is what fills the slot. KindEvaluation
// is not a slot kind and resolves to a theory problem.
func Fallback(kind Kind, slot int) Record {
	switch kind {
	case KindDSA:
		return fallbackDSA(slot)
	case KindMachineCoding:
		return fallbackMachineCoding(slot)
	case KindSystemDesign:
		return fallbackSystemDesign(slot)
	case KindMockInterview:
		return fallbackMockInterview(slot)
	default:
		return fallbackTheory(slot)
	}
}

func fallbackCore(kind Kind, slot int, title string, difficulty Difficulty, minutes int) Core {
	return Core{
		ID:            fmt.Sprintf("fallback-%s-%d", kind, slot),
		Title:         title,
		Type:          kind,
		Difficulty:    difficulty,
		EstimatedTime: minutes,
	}
}

func fallbackDSA(slot int) *DSAProblem {
	bank := []DSAProblem{
		{
			Core:        fallbackCore(KindDSA, slot, "Two Sum", DifficultyEasy, 20),
			Description: "Given an array of integers nums and an integer target, return the indices of the two numbers that add up to target. Each input has exactly one solution, and you may not use the same element twice.",
			Examples: []Example{
				{Input: "nums = [2, 7, 11, 15], target = 9", Output: "[0, 1]", Explanation: "nums[0] + nums[1] = 2 + 7 = 9."},
				{Input: "nums = [3, 2, 4], target = 6", Output: "[1, 2]"},
			},
			Constraints: []string{"2 <= nums.length <= 10^4", "-10^9 <= nums[i] <= 10^9", "Exactly one valid answer exists"},
			Hints:       []string{"Can you trade memory for time?", "A hash map of value to index gives O(n)."},
		},
		{
			Core:        fallbackCore(KindDSA, slot, "Valid Parentheses", DifficultyEasy, 15),
			Description: "Given a string containing only the characters '(', ')', '{', '}', '[' and ']', determine whether the input string is valid: every opening bracket must be closed by the same type of bracket, in the correct order.",
			Examples: []Example{
				{Input: "s = \"()[]{}\"", Output: "true"},
				{Input: "s = \"(]\"", Output: "false", Explanation: "The '(' is closed by ']', a mismatched type."},
			},
			Constraints: []string{"1 <= s.length <= 10^4"},
			Hints:       []string{"What data structure matches the most-recent-open-first property?"},
		},
		{
			Core:        fallbackCore(KindDSA, slot, "Longest Substring Without Repeating Characters", DifficultyMedium, 30),
			Description: "Given a string s, find the length of the longest substring without repeating characters.",
			Examples: []Example{
				{Input: "s = \"abcabcbb\"", Output: "3", Explanation: "The answer is \"abc\", with length 3."},
				{Input: "s = \"bbbbb\"", Output: "1"},
			},
			Constraints: []string{"0 <= s.length <= 5 * 10^4"},
			Hints:       []string{"A sliding window with a last-seen index map avoids rescanning."},
		},
	}
	p := bank[slot%len(bank)]
	return &p
}

func fallbackMachineCoding(slot int) *MachineCodingProblem {
	bank := []MachineCodingProblem{
		{
			Core:        fallbackCore(KindMachineCoding, slot, "Autocomplete Search Box", DifficultyMedium, 45),
			Description: "Build a search input that fetches suggestions as the user types, showing the top results in a dropdown below the field.",
			Requirements: []string{
				"Debounce keystrokes so at most one request fires per 300ms of inactivity",
				"Show a loading indicator while a request is in flight",
				"Discard out-of-order responses so stale results never overwrite fresh ones",
				"Support keyboard navigation through suggestions",
			},
			AcceptanceCriteria: []string{"Typing rapidly issues a single request", "Arrow keys move the highlight and Enter selects"},
			TechHints:          []string{"Track a request sequence number to detect staleness"},
		},
		{
			Core:        fallbackCore(KindMachineCoding, slot, "Kanban Board", DifficultyMedium, 60),
			Description: "Build a three-column task board (Todo, In Progress, Done) where cards can be created, edited, and moved between columns.",
			Requirements: []string{
				"Create a card with a title and optional description",
				"Move cards between columns via drag-and-drop or buttons",
				"Persist board state across page reloads",
			},
			AcceptanceCriteria: []string{"A moved card stays in its new column after reload"},
			TechHints:          []string{"Model the board as column-id to ordered card-id list"},
		},
	}
	p := bank[slot%len(bank)]
	return &p
}

func fallbackSystemDesign(slot int) *SystemDesignProblem {
	bank := []SystemDesignProblem{
		{
			Core:        fallbackCore(KindSystemDesign, slot, "Design a URL Shortener", DifficultyMedium, 45),
			Description: "Design a service like bit.ly that turns long URLs into short aliases and redirects visitors to the original URL.",
			FunctionalRequirements: []string{
				"Shorten a URL to a unique alias",
				"Redirect an alias to its original URL",
				"Expire links after a configurable TTL",
			},
			NonFunctionalRequirements: []string{"Redirect latency under 50ms at p99", "Reads outnumber writes 100:1"},
			Scale:                     "100M new URLs per month, 10B redirects per month",
		},
		{
			Core:        fallbackCore(KindSystemDesign, slot, "Design a News Feed", DifficultyHard, 60),
			Description: "Design the feed backend for a social network: users follow other users and see a ranked timeline of their posts.",
			FunctionalRequirements: []string{
				"Publish a post visible to followers",
				"Fetch a user's feed, newest-relevant first",
				"Support celebrities with millions of followers",
			},
			NonFunctionalRequirements: []string{"Feed load under 200ms at p95", "Eventual consistency acceptable within seconds"},
			Scale:                     "500M daily active users, 100k posts per second at peak",
		},
	}
	p := bank[slot%len(bank)]
	return &p
}

func fallbackTheory(slot int) *TheoryProblem {
	bank := []TheoryProblem{
		{
			Core:           fallbackCore(KindTheory, slot, "Event Loop Fundamentals", DifficultyMedium, 15),
			Question:       "Explain how the JavaScript event loop schedules work. In what order do synchronous code, microtasks, and macrotasks run, and why does it matter for UI responsiveness?",
			ExpectedTopics: []string{"call stack", "microtask queue", "macrotask queue", "rendering between tasks"},
			FollowUps:      []string{"Where do Promise callbacks run relative to setTimeout?", "How can a long task starve rendering?"},
		},
		{
			Core:           fallbackCore(KindTheory, slot, "HTTP Caching", DifficultyMedium, 15),
			Question:       "Walk through how browser HTTP caching works. What do Cache-Control, ETag, and Last-Modified control, and when does a request hit the network?",
			ExpectedTopics: []string{"freshness vs revalidation", "max-age and no-cache", "conditional requests", "304 responses"},
			FollowUps:      []string{"How would you cache-bust a deployed asset safely?"},
		},
		{
			Core:           fallbackCore(KindTheory, slot, "Database Indexing", DifficultyMedium, 15),
			Question:       "What is a database index, how does a B-tree index speed up reads, and what costs does it impose on writes?",
			ExpectedTopics: []string{"B-tree structure", "covering indexes", "write amplification", "selectivity"},
			FollowUps:      []string{"When would a full table scan beat an index lookup?"},
		},
	}
	p := bank[slot%len(bank)]
	return &p
}

func fallbackMockInterview(slot int) *MockInterviewProblem {
	bank := []MockInterviewProblem{
		{
			Core:               fallbackCore(KindMockInterview, slot, "Behavioral Deep Dive", DifficultyMedium, 30),
			Scenario:           "A behavioral interview focused on a project the candidate owned end to end, probing for impact, tradeoffs, and collaboration under disagreement.",
			InterviewerPersona: "A friendly but thorough engineering manager who asks for concrete numbers and follows every vague claim with 'what specifically did you do?'",
			Stages:             []string{"Warm-up and project selection", "Technical deep dive", "Conflict and collaboration", "Reflection and learnings"},
		},
		{
			Core:               fallbackCore(KindMockInterview, slot, "Incident Response Walkthrough", DifficultyMedium, 30),
			Scenario:           "A production incident simulation: the candidate is paged for elevated error rates on a checkout service and must narrate their debugging process.",
			InterviewerPersona: "A calm senior SRE who drip-feeds monitoring data only when the candidate asks for the right signal.",
			Stages:             []string{"Triage and impact assessment", "Hypothesis formation", "Mitigation vs root cause", "Postmortem actions"},
		},
	}
	p := bank[slot%len(bank)]
	return &p
}
