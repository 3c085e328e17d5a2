package services

import (
	"context"
	"time"

	"querynest/config"
	"querynest/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like targets and actions.
const (
	TargetQuestion = "question"
	TargetAnswer   = "answer"

	ActionLike   = "like"
	ActionUnlike = "unlike"
)

// ScoringService keeps questions, answers and profiles consistent. Every
// mutation that touches more than one document runs inside a single store
// transaction, so a failure at any step leaves nothing half-applied.
type ScoringService struct {
	store    Store
	askPoint int
}

func NewScoringService(store Store, askPoint int) *ScoringService {
	return &ScoringService{store: store, askPoint: askPoint}
}

var scoringService *ScoringService

func InitScoringService(store Store, cfg *config.Config) {
	scoringService = NewScoringService(store, cfg.Scoring.AskPoint)
}

func GetScoringService() *ScoringService {
	return scoringService
}

// CreateQuestion files a question under an existing tag and credits the
// asker with the flat ask award. The question insert, the profile's
// questionIds append and the point credit commit together or not at all.
func (s *ScoringService) CreateQuestion(ctx context.Context, userID primitive.ObjectID, tagName, text string) (*models.Question, error) {
	tag, err := s.store.TagByName(ctx, tagName)
	if err != nil {
		return nil, orNotFound(err, ErrTagNotFound)
	}

	question := &models.Question{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		TagID:     tag.ID,
		Question:  text,
		AnswerIDs: []primitive.ObjectID{},
		Likes:     []primitive.ObjectID{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.InsertQuestion(ctx, question); err != nil {
			return err
		}

		profile, err := s.store.ProfileByUserID(ctx, userID)
		if err != nil {
			return orNotFound(err, ErrProfileNotFound)
		}

		profile.QuestionIDs = append(profile.QuestionIDs, question.ID)
		profile.TotalPoints += s.askPoint
		profile.SyncCounts()
		return s.store.UpdateProfile(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// CreateAnswer records an answer, snapshots the tag's current point value
// onto it and credits the answerer. The answer insert, the question's
// answer-list append and the profile update are one atomic unit.
func (s *ScoringService) CreateAnswer(ctx context.Context, userID, questionID primitive.ObjectID, text string) (*models.Answer, *models.Tag, error) {
	question, err := s.store.QuestionByID(ctx, questionID)
	if err != nil {
		return nil, nil, orNotFound(err, ErrQuestionNotFound)
	}

	tag, err := s.store.TagByID(ctx, question.TagID)
	if err != nil {
		return nil, nil, orNotFound(err, ErrTagNotFound)
	}

	now := time.Now()
	duration := int64(now.Sub(question.CreatedAt).Seconds())
	if duration < 0 {
		duration = 0
	}

	answer := &models.Answer{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		QuestionID:  question.ID,
		Answer:      text,
		Likes:       []primitive.ObjectID{},
		Ratings:     []float64{},
		Point:       tag.TagPoint,
		AnsDuration: duration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.InsertAnswer(ctx, answer); err != nil {
			return err
		}

		question.AnswerIDs = append(question.AnswerIDs, answer.ID)
		if err := s.store.UpdateQuestion(ctx, question); err != nil {
			return err
		}

		profile, err := s.store.ProfileByUserID(ctx, userID)
		if err != nil {
			return orNotFound(err, ErrProfileNotFound)
		}

		profile.AnswerIDs = append(profile.AnswerIDs, answer.ID)
		profile.TotalPoints += tag.TagPoint
		profile.SyncCounts()
		return s.store.UpdateProfile(ctx, profile)
	})
	if err != nil {
		return nil, nil, err
	}
	return answer, tag, nil
}

// ToggleLike adds or removes the acting user from a target's like set and
// mirrors the membership into the profile's liked list. Both sides of the
// mirror change in the same transaction, so the invariant "user in
// target.likes iff target in profile.liked" holds at every observable
// point. Returns the live like count.
func (s *ScoringService) ToggleLike(ctx context.Context, userID, targetID primitive.ObjectID, target, action string) (int, error) {
	if action != ActionLike && action != ActionUnlike {
		return 0, ErrInvalidAction
	}

	var likeCount int
	var err error
	switch target {
	case TargetQuestion:
		err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
			question, err := s.store.QuestionByID(ctx, targetID)
			if err != nil {
				return orNotFound(err, ErrQuestionNotFound)
			}
			profile, err := s.store.ProfileByUserID(ctx, userID)
			if err != nil {
				return orNotFound(err, ErrProfileNotFound)
			}

			question.Likes, profile.LikedQuestions, err = toggleMembership(
				question.Likes, profile.LikedQuestions, userID, question.ID, action)
			if err != nil {
				return err
			}
			likeCount = question.NoOfLikes()

			if err := s.store.UpdateQuestion(ctx, question); err != nil {
				return err
			}
			return s.store.UpdateProfile(ctx, profile)
		})
	case TargetAnswer:
		err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
			answer, err := s.store.AnswerByID(ctx, targetID)
			if err != nil {
				return orNotFound(err, ErrAnswerNotFound)
			}
			profile, err := s.store.ProfileByUserID(ctx, userID)
			if err != nil {
				return orNotFound(err, ErrProfileNotFound)
			}

			answer.Likes, profile.LikedAnswers, err = toggleMembership(
				answer.Likes, profile.LikedAnswers, userID, answer.ID, action)
			if err != nil {
				return err
			}
			likeCount = answer.NoOfLikes()

			if err := s.store.UpdateAnswer(ctx, answer); err != nil {
				return err
			}
			return s.store.UpdateProfile(ctx, profile)
		})
	default:
		return 0, ErrInvalidTarget
	}

	if err != nil {
		return 0, err
	}
	return likeCount, nil
}

// RateAnswer pushes a rating into the answer's bounded window, recomputes
// the answer's mean and then rescans every answer the owner has to refresh
// the profile-level average. The answer and profile updates are one unit.
func (s *ScoringService) RateAnswer(ctx context.Context, answerID primitive.ObjectID, rating float64) (float64, float64, error) {
	if rating < 0 || rating > 5 {
		return 0, 0, ErrRatingOutOfRange
	}

	var updatedRating, userAvg float64
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		answer, err := s.store.AnswerByID(ctx, answerID)
		if err != nil {
			return orNotFound(err, ErrAnswerNotFound)
		}

		answer.Ratings = pushRating(answer.Ratings, rating)
		answer.Rating = meanOf(answer.Ratings)
		if err := s.store.UpdateAnswer(ctx, answer); err != nil {
			return err
		}
		updatedRating = answer.Rating

		profile, err := s.store.ProfileByUserID(ctx, answer.UserID)
		if err != nil {
			return orNotFound(err, ErrProfileNotFound)
		}

		// Full rescan of the owner's answers. Deliberately simple; the
		// answer just updated is included because its document was
		// written above, inside this transaction.
		answers, err := s.store.AnswersByUser(ctx, answer.UserID)
		if err != nil {
			return err
		}
		var sum float64
		for _, a := range answers {
			sum += a.Rating
		}
		if len(answers) > 0 {
			profile.AvgRating = sum / float64(len(answers))
		} else {
			profile.AvgRating = 0
		}
		userAvg = profile.AvgRating
		return s.store.UpdateProfile(ctx, profile)
	})
	if err != nil {
		return 0, 0, err
	}
	return updatedRating, userAvg, nil
}

// toggleMembership applies one like/unlike to both sides of the mirror and
// rejects toggles that would not change settled state.
func toggleMembership(likes, liked []primitive.ObjectID, userID, targetID primitive.ObjectID, action string) ([]primitive.ObjectID, []primitive.ObjectID, error) {
	has := containsID(likes, userID)
	switch action {
	case ActionLike:
		if has {
			return nil, nil, ErrAlreadyLiked
		}
		return append(likes, userID), append(liked, targetID), nil
	case ActionUnlike:
		if !has {
			return nil, nil, ErrNotLiked
		}
		return removeID(likes, userID), removeID(liked, targetID), nil
	}
	return nil, nil, ErrInvalidAction
}

// pushRating appends to the FIFO window, evicting the oldest value once
// the window holds RatingWindowSize entries.
func pushRating(window []float64, rating float64) []float64 {
	if len(window) >= models.RatingWindowSize {
		window = window[len(window)-models.RatingWindowSize+1:]
	}
	return append(window, rating)
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
