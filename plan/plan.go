// Package plan maps billing subscription status to a plan tier and
// evaluates the plan quota checks. Pure functions, no side effects:
// callers decide how to react to a false.
package plan

import (
	"sugary-backend/models"
)

type Plan string

const (
	Free Plan = "free"
	Pro  Plan = "pro"
)

// Unlimited marks a ceiling the plan does not enforce
const Unlimited = -1

const (
	FreeMaxFeatures              = 3
	FreeMaxSubscribersPerFeature = 50
	FreeMaxTotalSubscribers      = 200
	FreeMaxUpdatesPerMonth       = 5
)

var maxFeatures = map[Plan]int64{
	Free: FreeMaxFeatures,
	Pro:  Unlimited,
}

var maxSubscribersPerFeature = map[Plan]int64{
	Free: FreeMaxSubscribersPerFeature,
	Pro:  Unlimited,
}

var maxTotalSubscribers = map[Plan]int64{
	Free: FreeMaxTotalSubscribers,
	Pro:  Unlimited,
}

var maxUpdatesPerMonth = map[Plan]int64{
	Free: FreeMaxUpdatesPerMonth,
	Pro:  Unlimited,
}

// For maps a subscription status to the plan tier. Only active and
// trialing grant Pro; everything else, including no subscription at
// all, is Free.
func For(status models.SubscriptionStatus) Plan {
	switch status {
	case models.SubscriptionActive, models.SubscriptionTrialing:
		return Pro
	default:
		return Free
	}
}

func under(current int64, limit int64) bool {
	if limit == Unlimited {
		return true
	}
	return current < limit
}

func CanCreateFeature(currentCount int64, p Plan) bool {
	return under(currentCount, maxFeatures[p])
}

func CanAddSubscriber(currentCount int64, p Plan) bool {
	return under(currentCount, maxSubscribersPerFeature[p])
}

func CanAddTotalSubscriber(currentCount int64, p Plan) bool {
	return under(currentCount, maxTotalSubscribers[p])
}

func CanSendSubscriberUpdate(currentMonthCount int64, p Plan) bool {
	return under(currentMonthCount, maxUpdatesPerMonth[p])
}
