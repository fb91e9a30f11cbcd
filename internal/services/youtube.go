package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"studymate-backend/internal/models"
)

// VideoSearcher is the video-search port: one query, a bounded list of
// results in provider order.
type VideoSearcher interface {
	Search(ctx context.Context, query string, maxResults int64) ([]models.Video, error)
}

// YouTubeService searches the YouTube Data API. Results are cached in Redis
// for a short TTL; cache failures are logged and ignored, never fatal.
type YouTubeService struct {
	yt    *youtube.Service
	cache *redis.Client
	ttl   time.Duration
}

func NewYouTubeService(ctx context.Context, apiKey string, cache *redis.Client, ttl time.Duration) (*YouTubeService, error) {
	yt, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}
	return &YouTubeService{yt: yt, cache: cache, ttl: ttl}, nil
}

func (s *YouTubeService) Search(ctx context.Context, query string, maxResults int64) ([]models.Video, error) {
	cacheKey := "videosearch:" + query

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var videos []models.Video
			if json.Unmarshal([]byte(cached), &videos) == nil {
				return videos, nil
			}
		} else if err != redis.Nil {
			log.Printf("video cache read failed for %q: %v", query, err)
		}
	}

	resp, err := s.yt.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}

	videos := make([]models.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		video := models.Video{
			Title:       item.Snippet.Title,
			URL:         fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Id.VideoId),
			Description: item.Snippet.Description,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
			video.Thumbnail = item.Snippet.Thumbnails.Default.Url
		}
		videos = append(videos, video)
	}

	if s.cache != nil {
		if data, err := json.Marshal(videos); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.ttl).Err(); err != nil {
				log.Printf("video cache write failed for %q: %v", query, err)
			}
		}
	}

	return videos, nil
}
