package trips

import (
	"sort"

	"github.com/mwhitaker/daytripper/internal/models"
)

// RankByDestination sorts trips by destination then total flight cost and
// marks the cheapest option per destination. Input is not mutated.
func RankByDestination(trips []models.Trip) []models.Trip {
	if len(trips) == 0 {
		return trips
	}

	ranked := make([]models.Trip, len(trips))
	copy(ranked, trips)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Destination != ranked[j].Destination {
			return ranked[i].Destination < ranked[j].Destination
		}
		return ranked[i].TotalFlightCost < ranked[j].TotalFlightCost
	})

	rank := 0
	last := ""
	for i := range ranked {
		if ranked[i].Destination != last {
			last = ranked[i].Destination
			rank = 0
		}
		rank++
		ranked[i].RankForDestination = rank
		ranked[i].BestOption = rank == 1
	}
	return ranked
}
