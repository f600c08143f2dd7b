package behavior

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/email-triage/internal/core"
)

func thread(id, subject, snippet string) *core.IngestedThread {
	return &core.IngestedThread{
		ThreadID:      id,
		Subject:       subject,
		LatestSnippet: snippet,
	}
}

func TestSuggestBucketsPadsWithDefaults(t *testing.T) {
	m := testModel(t)

	buckets := m.SuggestBuckets([]*core.IngestedThread{
		thread("t1", "Weekly status meeting", "project deadline report"),
	})

	require.GreaterOrEqual(t, len(buckets), 5)
	require.LessOrEqual(t, len(buckets), 7)

	// Work scores most hits and ranks first
	assert.Equal(t, BucketWork, buckets[0])

	seen := make(map[string]bool)
	for _, b := range buckets {
		assert.False(t, seen[b], "duplicate bucket %s", b)
		seen[b] = true
	}
}

func TestSuggestBucketsEmptyCorpusYieldsDefaults(t *testing.T) {
	m := testModel(t)

	buckets := m.SuggestBuckets(nil)

	assert.Equal(t, defaultBuckets, buckets)
}

func TestSuggestBucketsCapsAtSeven(t *testing.T) {
	m := testModel(t)

	corpus := []*core.IngestedThread{
		thread("t1", "project meeting", "team review"),
		thread("t2", "weekly newsletter", "digest"),
		thread("t3", "bill payment due", "invoice"),
		thread("t4", "dinner party", "weekend plans"),
		thread("t5", "order shipped", "delivery"),
		thread("t6", "flight booking", "hotel"),
		thread("t7", "job interview", "resume"),
		thread("t8", "bank statement", "transaction"),
		thread("t9", "status alert", "notification"),
	}

	buckets := m.SuggestBuckets(corpus)
	assert.Len(t, buckets, 7)
}

func TestAssignThreadsToBuckets(t *testing.T) {
	m := testModel(t)

	work := thread("t1", "Weekly status meeting", "project deadline report")
	shopping := thread("t2", "Your order shipped", "track your delivery")

	assignments := m.AssignThreadsToBuckets([]*core.IngestedThread{work, shopping}, []string{BucketWork, BucketSocial, BucketShopping})

	assert.Equal(t, BucketWork, assignments["t1"])
	assert.Equal(t, BucketShopping, assignments["t2"])
}

func TestAssignThreadsToBucketsIsDeterministic(t *testing.T) {
	m := testModel(t)

	threads := []*core.IngestedThread{
		thread("t1", "Weekly status meeting", "project deadline report"),
		thread("t2", "dinner plans", "party this weekend"),
		thread("t3", "payment due", "invoice attached"),
	}
	buckets := []string{BucketWork, BucketSocial, BucketBills, BucketUpdates}

	first := m.AssignThreadsToBuckets(threads, buckets)
	second := m.AssignThreadsToBuckets(threads, buckets)

	assert.Equal(t, first, second)
}

func TestAssignThreadsToBucketsZeroScoreFallsBackToUpdates(t *testing.T) {
	m := testModel(t)

	blank := thread("t1", "xyzzy", "qwerty")
	assignments := m.AssignThreadsToBuckets([]*core.IngestedThread{blank}, []string{BucketWork, BucketUpdates})

	assert.Equal(t, BucketUpdates, assignments["t1"])
}

func TestAssignThreadsToBucketsZeroScoreFallsBackToFirstBucket(t *testing.T) {
	m := testModel(t)

	blank := thread("t1", "xyzzy", "qwerty")
	assignments := m.AssignThreadsToBuckets([]*core.IngestedThread{blank}, []string{BucketWork, BucketTravel})

	assert.Equal(t, BucketWork, assignments["t1"])
}

func TestAssignThreadsToBucketsEmptyBucketListYieldsUncategorized(t *testing.T) {
	m := testModel(t)

	blank := thread("t1", "xyzzy", "qwerty")
	assignments := m.AssignThreadsToBuckets([]*core.IngestedThread{blank}, []string{})

	assert.Equal(t, BucketUncategorized, assignments["t1"])
}

func TestAssignThreadsToBucketsTieGoesToFirstListed(t *testing.T) {
	m := testModel(t)

	// "payment" scores one hit for both Bills and Finance.
	tied := thread("t1", "payment", "")
	assignments := m.AssignThreadsToBuckets([]*core.IngestedThread{tied}, []string{BucketFinance, BucketBills})

	assert.Equal(t, BucketFinance, assignments["t1"])
}

func TestAssignThreadsToBucketsNilUsesSessionDefinitions(t *testing.T) {
	m := testModel(t)

	work := thread("t1", "project meeting", "deadline")
	m.SuggestBuckets([]*core.IngestedThread{work})

	assignments := m.AssignThreadsToBuckets([]*core.IngestedThread{work}, nil)
	assert.Equal(t, BucketWork, assignments["t1"])

	session := m.Session()
	assert.Equal(t, assignments, session.ThreadToBucket)
}

func TestUpdateUserMemoryActivatesTraitsAboveThreshold(t *testing.T) {
	m := testModel(t)

	corpus := []*core.IngestedThread{
		thread("t1", "project meeting", "team review"),
		thread("t2", "budget report", "client deadline"),
		thread("t3", "flight itinerary", "hotel booking"),
	}

	snapshot, err := m.UpdateUserMemory(context.Background(), corpus)
	require.NoError(t, err)

	assert.True(t, snapshot.UserTraits[TraitWorkEmailUser])
	assert.True(t, snapshot.UserTraits[TraitTraveler])
	assert.False(t, snapshot.UserTraits[TraitFrequentShopper])

	assert.Equal(t, baseTime, snapshot.Timestamps[TraitWorkEmailUser])
	assert.NotContains(t, snapshot.Timestamps, TraitFrequentShopper)
}

func TestUpdateUserMemoryIsMonotonic(t *testing.T) {
	m := testModel(t)

	travel := []*core.IngestedThread{thread("t1", "flight booking", "itinerary")}
	_, err := m.UpdateUserMemory(context.Background(), travel)
	require.NoError(t, err)

	later := baseTime.Add(48 * time.Hour)
	m.now = func() time.Time { return later }

	noTravel := []*core.IngestedThread{thread("t2", "project meeting", "review")}
	snapshot, err := m.UpdateUserMemory(context.Background(), noTravel)
	require.NoError(t, err)

	// Trait stays active and keeps its first-activation timestamp.
	assert.True(t, snapshot.UserTraits[TraitTraveler])
	assert.Equal(t, baseTime, snapshot.Timestamps[TraitTraveler])

	// The newly learned trait gets the later timestamp.
	assert.True(t, snapshot.UserTraits[TraitWorkEmailUser])
	assert.Equal(t, later, snapshot.Timestamps[TraitWorkEmailUser])
}

func TestUpdateUserMemoryThresholdRequiresTenPercent(t *testing.T) {
	m := testModel(t)

	// 1 travel thread out of 20: exactly 5%, below the 10% threshold.
	var corpus []*core.IngestedThread
	corpus = append(corpus, thread("t0", "flight booking", "itinerary"))
	for i := 1; i < 20; i++ {
		corpus = append(corpus, thread("tn", "hello", "nothing"))
	}

	snapshot, err := m.UpdateUserMemory(context.Background(), corpus)
	require.NoError(t, err)

	assert.False(t, snapshot.UserTraits[TraitTraveler])
}
