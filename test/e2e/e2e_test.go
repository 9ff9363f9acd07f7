// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"college-match-workers/internal/colleges"
	"college-match-workers/internal/common/config"
	"college-match-workers/internal/common/database"
	"college-match-workers/internal/common/logger"
	"college-match-workers/internal/models"
	"college-match-workers/internal/scoring"

	fetchcollegestats "college-match-workers/internal/workers/college-data/fetch-college-stats"
	searchcolleges "college-match-workers/internal/workers/college-data/search-colleges"
	sendlistnotification "college-match-workers/internal/workers/communication/send-list-notification"
	scoreuniversities "college-match-workers/internal/workers/recommendation/score-universities"
	selectrecommendations "college-match-workers/internal/workers/recommendation/select-recommendations"
)

var zapLog *zap.Logger

func TestMain(m *testing.M) {
	if os.Getenv("E2E") == "" {
		fmt.Println("Skipping e2e tests; set E2E=1 and start the local stack (postgres, redis, elasticsearch) to run them.")
		os.Exit(0)
	}

	zapLog, _ = zap.NewProduction()

	code := m.Run()
	os.Exit(code)
}

// ==========================
// Notification channel mocks
// ==========================

type captureSES struct {
	sent []*ses.SendEmailInput
}

func (m *captureSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.sent = append(m.sent, params)
	return &ses.SendEmailOutput{}, nil
}

type captureSNS struct {
	published []*sns.PublishInput
}

func (m *captureSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.published = append(m.published, params)
	return &sns.PublishOutput{}, nil
}

// ==========================
// Full pipeline
// ==========================

func TestFullRecommendationPipeline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Log("🚀 Starting full recommendation pipeline against real services...")

	// Force localhost for e2e runs
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.URL = "http://localhost:9200"

	log := logger.NewZapAdapter(zapLog)

	// --- 1. Connectivity ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "❌ PostgreSQL connection failed")
	require.NoError(t, pg.Ping(ctx), "❌ PostgreSQL ping failed")
	defer pg.Close()
	t.Log("✅ PostgreSQL connected")

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "❌ Redis client creation failed")
	require.NoError(t, rdb.Ping(ctx), "❌ Redis ping failed")
	defer rdb.Close()
	t.Log("✅ Redis connected")

	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err, "❌ Elasticsearch client creation failed")
	require.NoError(t, esClient.Ping(), "❌ Elasticsearch ping failed")
	t.Log("✅ Elasticsearch connected")

	// --- 2. Seed data ---
	seedDatabase(t, ctx, pg)
	seedSearchIndex(t, esClient)

	// --- 3. search-colleges ---
	searchHandler := searchcolleges.NewHandler(searchcolleges.LoadConfig(), esClient.Client, log)
	searchOutput, err := searchHandler.Execute(ctx, &searchcolleges.Input{
		Filters: searchcolleges.SearchFilters{Major: "Computer Science"},
	})
	require.NoError(t, err, "❌ search-colleges failed")
	require.NotEmpty(t, searchOutput.Colleges, "❌ search-colleges returned no candidates")
	t.Logf("✅ search-colleges found %d candidates", searchOutput.TotalHits)

	collegeNames := make([]string, 0, len(searchOutput.Colleges))
	for _, c := range searchOutput.Colleges {
		name, _ := c["name"].(string)
		require.NotEmpty(t, name)
		collegeNames = append(collegeNames, name)
	}

	// --- 4. fetch-college-stats ---
	repo := colleges.NewRepository(pg.DB)
	cache := colleges.NewStatsCache(rdb.Client, time.Minute)
	provider := colleges.NewStatsProvider(repo, cache, nil, log)

	fetchHandler := fetchcollegestats.NewHandler(fetchcollegestats.LoadConfig(), provider, repo, log)
	fetchOutput, err := fetchHandler.Execute(ctx, &fetchcollegestats.Input{
		CollegeNames:  collegeNames,
		IntendedMajor: "Computer Science",
	})
	require.NoError(t, err, "❌ fetch-college-stats failed")
	require.Equal(t, len(collegeNames), fetchOutput.FetchedCount, "❌ some seeded colleges were not resolved")
	assert.Empty(t, fetchOutput.MissingColleges)
	t.Logf("✅ fetch-college-stats resolved %d colleges", fetchOutput.FetchedCount)

	// --- 5. score-universities ---
	sat := 1400
	profile := scoring.StudentContext{
		IsDomestic:       true,
		GPA:              3.7,
		SATScore:         &sat,
		APCount:          4,
		IntendedMajor:    "Computer Science",
		IncomeTier:       scoring.IncomeTierMedium,
		StateOfResidence: "CA",
		CampusPreference: scoring.CampusUrban,
		PostGradGoal:     scoring.GoalJobPlacement,
	}

	scorer := scoring.NewMatchScorer(scoring.DefaultConfig())
	scoreHandler := scoreuniversities.NewHandler(scoreuniversities.LoadConfig(), scorer, log)
	scoreOutput, err := scoreHandler.Execute(ctx, &scoreuniversities.Input{
		StudentProfile: profile,
		Universities:   fetchOutput.Universities,
	})
	require.NoError(t, err, "❌ score-universities failed")
	require.Equal(t, len(fetchOutput.Universities), scoreOutput.ScoredCount)

	// Descending by match score
	for i := 1; i < len(scoreOutput.ScoredUniversities); i++ {
		prev := scoreOutput.ScoredUniversities[i-1]["matchScore"].(float64)
		curr := scoreOutput.ScoredUniversities[i]["matchScore"].(float64)
		assert.GreaterOrEqual(t, prev, curr, "❌ scored list is not sorted")
	}
	t.Logf("✅ score-universities scored %d colleges", scoreOutput.ScoredCount)

	// --- 6. select-recommendations ---
	selectHandler := selectrecommendations.NewHandler(selectrecommendations.LoadConfig(), scorer, log)
	selectOutput, err := selectHandler.Execute(ctx, &selectrecommendations.Input{
		StudentProfile: profile,
		Universities:   fetchOutput.Universities,
	})
	require.NoError(t, err, "❌ select-recommendations failed")
	require.NotEmpty(t, selectOutput.Recommendations, "❌ no recommendations selected")
	require.NotEmpty(t, selectOutput.RecommendationRunID)

	// Reach entries come before Target, Target before Safety.
	rank := map[string]int{"Reach": 0, "Target": 1, "Safety": 2}
	lastRank := -1
	summaries := make([]models.RecommendationSummary, 0, len(selectOutput.Recommendations))
	for _, rec := range selectOutput.Recommendations {
		label := rec["label"].(string)
		assert.GreaterOrEqual(t, rank[label], lastRank, "❌ recommendations out of label order")
		lastRank = rank[label]

		summaries = append(summaries, models.RecommendationSummary{
			Name:       rec["name"].(string),
			Label:      label,
			MatchScore: rec["matchScore"].(float64),
		})
	}
	t.Logf("✅ select-recommendations picked %d colleges (%v)", len(summaries), selectOutput.LabelDistribution)

	// --- 7. send-list-notification ---
	sesMock := &captureSES{}
	snsMock := &captureSNS{}
	notifyCfg := sendlistnotification.LoadConfig()
	notifyHandler := sendlistnotification.NewHandlerWithClients(notifyCfg, sesMock, snsMock, log)

	notifyOutput, err := notifyHandler.Execute(ctx, &sendlistnotification.Input{
		RecipientEmail:      "student@example.com",
		StudentName:         "Alex",
		RecommendationRunID: selectOutput.RecommendationRunID,
		Recommendations:     summaries,
	})
	require.NoError(t, err, "❌ send-list-notification failed")
	assert.Equal(t, sendlistnotification.StatusSent, notifyOutput.Status)
	assert.True(t, notifyOutput.EmailSent)
	require.Len(t, sesMock.sent, 1)

	body := *sesMock.sent[0].Message.Body.Text.Data
	assert.Contains(t, body, "Hi Alex")
	assert.Contains(t, body, summaries[0].Name)
	t.Log("✅ send-list-notification dispatched the list email")

	t.Log("🎉 Full recommendation pipeline passed")
}

// ==========================
// Seed helpers
// ==========================

func seedDatabase(t *testing.T, ctx context.Context, pg *database.PostgresClient) {
	t.Log("🔧 Seeding database tables...")

	db := pg.GetDB()

	schema := []string{
		`CREATE TABLE IF NOT EXISTS colleges (
			name VARCHAR(255) PRIMARY KEY,
			state VARCHAR(10),
			campus_setting VARCHAR(20),
			acceptance_rate DOUBLE PRECISION,
			median_gpa DOUBLE PRECISION,
			sat_25th INTEGER,
			sat_75th INTEGER,
			tuition_in_state DOUBLE PRECISION,
			tuition_out_of_state DOUBLE PRECISION,
			tuition_international DOUBLE PRECISION,
			avg_aid_package DOUBLE PRECISION,
			meets_full_need BOOLEAN DEFAULT false,
			need_blind_domestic BOOLEAN DEFAULT false,
			need_blind_international BOOLEAN DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS college_major_rankings (
			id SERIAL PRIMARY KEY,
			college_name VARCHAR(255) REFERENCES colleges(name),
			major VARCHAR(255),
			ranking INTEGER,
			UNIQUE(college_name, major)
		)`,
	}
	for _, q := range schema {
		_, err := db.ExecContext(ctx, q)
		require.NoError(t, err, "❌ schema creation failed")
	}

	seed := []string{
		`INSERT INTO colleges VALUES
			('Pinnacle Institute of Technology', 'MA', 'URBAN', 0.06, 3.93, 1500, 1570, 58000, 58000, 58000, 45000, true, true, false, DEFAULT)
			ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO colleges VALUES
			('Granite State University', 'NH', 'SUBURBAN', 0.55, 3.60, 1280, 1420, 18000, 34000, 38000, 16000, false, true, false, DEFAULT)
			ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO colleges VALUES
			('Blue Valley University', 'CA', 'URBAN', 0.48, 3.65, 1300, 1440, 14000, 42000, 46000, 20000, false, true, false, DEFAULT)
			ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO colleges VALUES
			('Maplewood College', 'OR', 'RURAL', 0.78, 3.20, 1050, 1250, 12000, 26000, 30000, 11000, false, true, false, DEFAULT)
			ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO colleges VALUES
			('Harbor Point University', 'FL', 'URBAN', 0.82, 3.10, 1020, 1220, 11000, 24000, 28000, 9000, false, true, false, DEFAULT)
			ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO college_major_rankings (college_name, major, ranking)
			VALUES ('Pinnacle Institute of Technology', 'Computer Science', 2)
			ON CONFLICT (college_name, major) DO NOTHING`,
		`INSERT INTO college_major_rankings (college_name, major, ranking)
			VALUES ('Blue Valley University', 'Computer Science', 38)
			ON CONFLICT (college_name, major) DO NOTHING`,
	}
	for _, q := range seed {
		_, err := db.ExecContext(ctx, q)
		require.NoError(t, err, "❌ seed insert failed")
	}

	t.Log("✅ Database seeded")
}

func seedSearchIndex(t *testing.T, es *database.ElasticsearchClient) {
	t.Log("🔧 Seeding colleges search index...")

	acc := func(v float64) *float64 { return &v }
	docs := []models.CollegeDocument{
		{Name: "Pinnacle Institute of Technology", State: "MA", CampusSetting: "URBAN",
			Majors: []string{"Computer Science", "Mechanical Engineering"}, AcceptanceRate: acc(0.06)},
		{Name: "Granite State University", State: "NH", CampusSetting: "SUBURBAN",
			Majors: []string{"Computer Science", "Business"}, AcceptanceRate: acc(0.55)},
		{Name: "Blue Valley University", State: "CA", CampusSetting: "URBAN",
			Majors: []string{"Computer Science", "Biology"}, AcceptanceRate: acc(0.48)},
		{Name: "Maplewood College", State: "OR", CampusSetting: "RURAL",
			Majors: []string{"Computer Science", "Forestry"}, AcceptanceRate: acc(0.78)},
		{Name: "Harbor Point University", State: "FL", CampusSetting: "URBAN",
			Majors: []string{"Computer Science", "Marine Biology"}, AcceptanceRate: acc(0.82)},
	}

	for i, doc := range docs {
		body, err := json.Marshal(doc)
		require.NoError(t, err)

		res, err := es.Client.Index("colleges", bytes.NewReader(body),
			es.Client.Index.WithDocumentID(fmt.Sprintf("e2e-%d", i)),
			es.Client.Index.WithRefresh("true"),
		)
		require.NoError(t, err, "❌ failed to index %s", doc.Name)
		require.False(t, res.IsError(), "❌ indexing %s returned error", doc.Name)
		res.Body.Close()
	}

	t.Log("✅ Search index seeded")
}
