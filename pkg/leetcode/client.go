// Package leetcode is a thin client for the public LeetCode GraphQL API.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultEndpoint = "https://leetcode.com/graphql"

const dailyQuery = `
query questionOfToday {
  activeDailyCodingChallengeQuestion {
    date
    link
    question {
      acRate
      difficulty
      frontendQuestionId: questionFrontendId
      paidOnly: isPaidOnly
      title
      titleSlug
      hasSolution
      hasVideoSolution
      topicTags { name id slug }
    }
  }
}`

const questionDetailQuery = `
query questionDetails($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    questionId
    questionFrontendId
    title
    titleSlug
    content
    isPaidOnly
    difficulty
    likes
    dislikes
    exampleTestcases
    categoryTitle
    topicTags { name slug }
    codeSnippets { lang langSlug code }
    stats
    hints
  }
}`

const problemListQuery = `
query problemsetQuestionList($categorySlug: String, $limit: Int, $skip: Int, $filters: QuestionListFilterInput) {
  problemsetQuestionList: questionList(
    categorySlug: $categorySlug
    limit: $limit
    skip: $skip
    filters: $filters
  ) {
    total: totalNum
    questions: data {
      acRate
      difficulty
      frontendQuestionId: questionFrontendId
      paidOnly: isPaidOnly
      title
      titleSlug
      topicTags { name id slug }
      hasSolution
      hasVideoSolution
    }
  }
}`

const userProfileQuery = `
query userProfile($username: String!) {
  allQuestionsCount { difficulty count }
  matchedUser(username: $username) {
    username
    githubUrl
    profile {
      realName
      countryName
      company
      school
      aboutMe
      userAvatar
      reputation
      ranking
    }
    submissionCalendar
    submitStats {
      acSubmissionNum { difficulty count submissions }
      totalSubmissionNum { difficulty count submissions }
    }
  }
}`

type TopicTag struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
	Slug string `json:"slug"`
}

type ProblemSummary struct {
	AcRate           float64    `json:"acRate"`
	Difficulty       string     `json:"difficulty"`
	FrontendID       string     `json:"frontendQuestionId"`
	PaidOnly         bool       `json:"paidOnly"`
	Title            string     `json:"title"`
	TitleSlug        string     `json:"titleSlug"`
	HasSolution      bool       `json:"hasSolution"`
	HasVideoSolution bool       `json:"hasVideoSolution"`
	TopicTags        []TopicTag `json:"topicTags"`
}

type DailyChallenge struct {
	Date     string         `json:"date"`
	Link     string         `json:"link"`
	Question ProblemSummary `json:"question"`
}

type CodeSnippet struct {
	Lang     string `json:"lang"`
	LangSlug string `json:"langSlug"`
	Code     string `json:"code"`
}

type QuestionDetail struct {
	QuestionID       string        `json:"questionId"`
	FrontendID       string        `json:"questionFrontendId"`
	Title            string        `json:"title"`
	TitleSlug        string        `json:"titleSlug"`
	Content          string        `json:"content"`
	IsPaidOnly       bool          `json:"isPaidOnly"`
	Difficulty       string        `json:"difficulty"`
	Likes            int           `json:"likes"`
	Dislikes         int           `json:"dislikes"`
	ExampleTestcases string        `json:"exampleTestcases"`
	CategoryTitle    string        `json:"categoryTitle"`
	TopicTags        []TopicTag    `json:"topicTags"`
	CodeSnippets     []CodeSnippet `json:"codeSnippets"`
	Stats            string        `json:"stats"`
	Hints            []string      `json:"hints"`
}

type ProblemList struct {
	Total     int              `json:"total"`
	Questions []ProblemSummary `json:"questions"`
}

type DifficultyCount struct {
	Difficulty  string `json:"difficulty"`
	Count       int    `json:"count"`
	Submissions int    `json:"submissions,omitempty"`
}

type UserProfile struct {
	AllQuestionsCount []DifficultyCount `json:"allQuestionsCount"`
	MatchedUser       *struct {
		Username  string `json:"username"`
		GithubURL string `json:"githubUrl"`
		Profile   struct {
			RealName    string `json:"realName"`
			CountryName string `json:"countryName"`
			Company     string `json:"company"`
			School      string `json:"school"`
			AboutMe     string `json:"aboutMe"`
			UserAvatar  string `json:"userAvatar"`
			Reputation  int    `json:"reputation"`
			Ranking     int    `json:"ranking"`
		} `json:"profile"`
		SubmissionCalendar string `json:"submissionCalendar"`
		SubmitStats        struct {
			AcSubmissionNum    []DifficultyCount `json:"acSubmissionNum"`
			TotalSubmissionNum []DifficultyCount `json:"totalSubmissionNum"`
		} `json:"submitStats"`
	} `json:"matchedUser"`
}

type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	// LeetCode rejects requests without a browser-looking agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leetcode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("leetcode returned status %d", resp.StatusCode)
	}

	var gqlResp graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return fmt.Errorf("decode leetcode response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		return fmt.Errorf("leetcode graphql error: %s", gqlResp.Errors[0].Message)
	}

	return json.Unmarshal(gqlResp.Data, out)
}

// GetDailyChallenge fetches LeetCode's official question of today.
func (c *Client) GetDailyChallenge(ctx context.Context) (*DailyChallenge, error) {
	var data struct {
		ActiveDailyCodingChallengeQuestion *DailyChallenge `json:"activeDailyCodingChallengeQuestion"`
	}
	if err := c.do(ctx, dailyQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.ActiveDailyCodingChallengeQuestion == nil {
		return nil, fmt.Errorf("no daily challenge in response")
	}
	return data.ActiveDailyCodingChallengeQuestion, nil
}

// GetQuestionBySlug fetches the full problem detail for a title slug.
func (c *Client) GetQuestionBySlug(ctx context.Context, slug string) (*QuestionDetail, error) {
	var data struct {
		Question *QuestionDetail `json:"question"`
	}
	err := c.do(ctx, questionDetailQuery, map[string]any{"titleSlug": slug}, &data)
	if err != nil {
		return nil, err
	}
	if data.Question == nil {
		return nil, fmt.Errorf("question %q not found", slug)
	}
	return data.Question, nil
}

// GetProblemList fetches a page of the problem set filtered by topic tags and
// difficulty. Difficulty is uppercased by the API ("EASY" etc); callers pass
// the display form and we translate here.
func (c *Client) GetProblemList(ctx context.Context, tags []string, difficulty string, limit, skip int) (*ProblemList, error) {
	filters := map[string]any{}
	if len(tags) > 0 {
		filters["tags"] = tags
	}
	if difficulty != "" {
		filters["difficulty"] = map[string]string{
			"Easy":   "EASY",
			"Medium": "MEDIUM",
			"Hard":   "HARD",
		}[difficulty]
	}

	var data struct {
		ProblemsetQuestionList *ProblemList `json:"problemsetQuestionList"`
	}
	err := c.do(ctx, problemListQuery, map[string]any{
		"categorySlug": "",
		"limit":        limit,
		"skip":         skip,
		"filters":      filters,
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.ProblemsetQuestionList == nil {
		return nil, fmt.Errorf("empty problem list response")
	}
	return data.ProblemsetQuestionList, nil
}

// GetUserProfile fetches public profile stats for a LeetCode username.
func (c *Client) GetUserProfile(ctx context.Context, username string) (*UserProfile, error) {
	var data UserProfile
	err := c.do(ctx, userProfileQuery, map[string]any{"username": username}, &data)
	if err != nil {
		return nil, err
	}
	if data.MatchedUser == nil {
		return nil, fmt.Errorf("user %q not found", username)
	}
	return &data, nil
}
