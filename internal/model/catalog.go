package model

// EventTypes 可選的活動類型清單，順序固定
var EventTypes = []string{
	"Conference",
	"Workshop",
	"Webinar",
	"Networking",
	"Fundraiser",
	"Product Launch",
	"Party or Celebration",
	"Meetup",
	"Hackathon",
	"Ceremony",
	"Sports Event",
	"Training Session",
	"Panel Discussion",
	"Festival",
}

// EventTags 可選的活動標籤清單，順序固定
var EventTags = []string{
	"Networking",
	"Marketing",
	"Tech Event",
	"Business",
	"Public Speaking",
	"Entrepreneurship",
	"Finance & Investment",
	"Motivational",
	"Others",
}
