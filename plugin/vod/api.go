package vod

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Brawl345/ladderbot/utils/httpUtils"
)

const (
	streamsUrl = "https://api.twitch.tv/kraken/streams"
	videosUrl  = "https://api.twitch.tv/kraken/channels/%s/videos"

	game        = "StarCraft II"
	pageSize    = 100
	maxPages    = 20
	streamsLive = "live"
)

type (
	StreamsResponse struct {
		Streams []Stream `json:"streams"`
		Links   struct {
			Next string `json:"next"`
		} `json:"_links"`
	}

	Stream struct {
		Viewers   int64   `json:"viewers"`
		CreatedAt string  `json:"created_at"`
		Channel   Channel `json:"channel"`
	}

	Channel struct {
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		Url         string `json:"url"`
	}

	VideosResponse struct {
		Videos []Video `json:"videos"`
	}

	Video struct {
		Url string `json:"url"`
	}
)

// fetchStreams pages through all live streams of the game. The API caps a
// page at 100 entries, so popular games take several requests.
func fetchStreams(clientID string) ([]Stream, error) {
	requestUrl, err := url.Parse(streamsUrl)
	if err != nil {
		return nil, err
	}

	q := requestUrl.Query()
	q.Set("game", game)
	q.Set("limit", fmt.Sprintf("%d", pageSize))
	q.Set("stream_type", streamsLive)
	q.Set("client_id", clientID)
	requestUrl.RawQuery = q.Encode()

	next := requestUrl.String()
	var streams []Stream

	for page := 0; page < maxPages; page++ {
		var response StreamsResponse
		err := httpUtils.MakeRequest(httpUtils.RequestOptions{
			URL:      next,
			Response: &response,
		})
		if err != nil {
			return nil, err
		}

		if len(response.Streams) == 0 {
			break
		}

		streams = append(streams, response.Streams...)

		if response.Links.Next == "" {
			break
		}
		next = fmt.Sprintf("%s&client_id=%s", response.Links.Next, url.QueryEscape(clientID))
	}

	return streams, nil
}

// matchStreams finds streams whose display name contains the query,
// case-insensitively.
func matchStreams(query string, streams []Stream) []Stream {
	var matches []Stream
	for _, stream := range streams {
		if strings.Contains(strings.ToLower(stream.Channel.DisplayName), strings.ToLower(query)) {
			matches = append(matches, stream)
		}
	}
	return matches
}

// uptime calculates how long a stream has been live from its RFC 3339
// start timestamp, like "2019-01-05T13:17:30Z".
func uptime(createdAt string, now time.Time) (time.Duration, error) {
	start, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return 0, err
	}

	diff := now.Sub(start)
	if diff < 0 {
		diff = 0
	}
	return diff, nil
}

// latestVodLink returns the channel's most recent past broadcast with the
// current uptime appended as a timestamp, so the link jumps to "now".
func latestVodLink(clientID, channelName string, streamUptime time.Duration) (string, error) {
	requestUrl, err := url.Parse(fmt.Sprintf(videosUrl, url.PathEscape(channelName)))
	if err != nil {
		return "", err
	}

	q := requestUrl.Query()
	q.Set("broadcast_type", "archive")
	q.Set("limit", "1")
	q.Set("client_id", clientID)
	requestUrl.RawQuery = q.Encode()

	var response VideosResponse
	err = httpUtils.MakeRequest(httpUtils.RequestOptions{
		URL:      requestUrl.String(),
		Response: &response,
	})
	if err != nil {
		return "", err
	}

	if len(response.Videos) == 0 {
		return "", nil
	}

	return fmt.Sprintf("%s?t=%ds", response.Videos[0].Url, int64(streamUptime.Seconds())), nil
}
