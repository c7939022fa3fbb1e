package integration_test

const (
	// Showing related constants
	TestShowingId    = 1
	OtherShowingId   = 2
	TestMovieTitle   = "Test Movie"
	TestTheatreName  = "Test Theatre"
	TestScreenName   = "Screen 1"
	TestShowingPrice = "50.00"
	TestSeatRows     = 10
	TestSeatCols     = 12

	// Actor related constants
	TestHolderId  = "session-aaaa"
	OtherHolderId = "session-bbbb"
	TestUserId    = "user-1"
	OtherUserId   = "user-2"
)
