package profile

import (
	"context"
	"fmt"

	"github.com/clipers/clipers-cli/internal/models"
)

// Дочерние коллекции ATS-профиля (образование, опыт, навыки, языки)
// адресуются независимо: каждая операция ходит на sub-resource endpoint
// дочерней записи, после чего обновляет только соответствующий срез
// агрегата — добавление дописывает, обновление заменяет по id,
// удаление выфильтровывает. Соседние записи и остальные поля профиля
// не затрагиваются.

// AddEducation добавляет запись об образовании
func (s *Store) AddEducation(ctx context.Context, input models.Education) (*models.Education, error) {
	var created models.Education
	if err := s.apiClient.Post(ctx, "/ats-profiles/education", input, &created); err != nil {
		return nil, fmt.Errorf("failed to add education: %w", err)
	}

	s.mutateATS(func(ats *models.ATSProfile) {
		ats.Education = append(ats.Education, created)
	})
	return &created, nil
}

// UpdateEducation обновляет запись об образовании по id
func (s *Store) UpdateEducation(ctx context.Context, id string, input models.Education) (*models.Education, error) {
	var updated models.Education
	if err := s.apiClient.Put(ctx, "/ats-profiles/education/"+id, input, &updated); err != nil {
		return nil, fmt.Errorf("failed to update education: %w", err)
	}

	s.mutateATS(func(ats *models.ATSProfile) {
		for i := range ats.Education {
			if ats.Education[i].ID == id {
				ats.Education[i] = updated
			}
		}
	})
	return &updated, nil
}

// DeleteEducation удаляет запись об образовании по id
func (s *Store) DeleteEducation(ctx context.Context, id string) error {
	if err := s.apiClient.Delete(ctx, "/ats-profiles/education/"+id); err != nil {
		return fmt.Errorf("failed to delete education: %w", err)
	}

	s.mutateATS(func(ats *models.ATSProfile) {
		ats.Education = filterByID(ats.Education, id, func(e models.Education) string { return e.ID })
	})
	return nil
}

// AddExperience добавляет запись об опыте работы
func (s *Store) AddExperience(ctx context.Context, input models.Experience) (*models.Experience, error) {
	var created models.Experience
	if err := s.apiClient.Post(ctx, "/ats-profiles/experience", input, &created); err != nil {
		return nil, fmt.Errorf("failed to add experience: %w", err)
	}

	s.mutateATS(func(ats *models.ATSProfile) {
		ats.Experience = append(ats.Experience, created)
	})
	return &created, nil
}

// UpdateExperience обновляет запись об опыте работы по id
func (s *Store) UpdateExperience(ctx context.Context, id string, input models.Experience) (*models.Experience, error) {
	var updated models.Experience
	if err := s.apiClient.Put(ctx, "/ats-profiles/experience/"+id, input, &updated); err != nil {
		return nil, fmt.Errorf("failed to update experience: %w", err)
	}

	s.mutateATS(func(ats *models.ATSProfile) {
		for i := range ats.Experience {
			if ats.Experience[i].ID == id {
				ats.Experience[i] = updated
			}
		}
	})
	return &updated, nil
}

// DeleteExperience удаляет запись об опыте работы по id
func (s *Store) DeleteExperience(ctx context.Context, id string) error {
	if err := s.apiClient.Delete(ctx, "/ats-profiles/experience/"+id); err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}

	s.mutateATS(func(ats *models.ATSProfile) {
		ats.Experience = filterByID(ats.Experience, id, func(e models.Experience) string { return e.ID })
	})
	return nil
}

// AddSkill добавляет навык
func (s *Store) AddSkill(ctx context.Context, input models.Skill) (*models.Skill, error) {
	var created models.Skill
	if err := s.apiClient.Post(ctx, "/ats-profiles/skills", input, &created); err != nil {
		return nil, fmt.Errorf("failed to add skill: %w", err)
	}

	s.mutateATS(func(ats *models.ATSProfile) {
		ats.Skills = append(ats.Skills, created)
	})
	return &created, nil
}

// UpdateSkill обновляет навык по id
func (s *Store) UpdateSkill(ctx context.Context, id string, input models.Skill) (*models.Skill, error) {
	var updated models.Skill
	if err := s.apiClient.Put(ctx, "/ats-profiles/skills/"+id, input, &updated); err != nil {
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}

	s.mutateATS(func(ats *models.ATSProfile) {
		for i := range ats.Skills {
			if ats.Skills[i].ID == id {
				ats.Skills[i] = updated
			}
		}
	})
	return &updated, nil
}

// DeleteSkill удаляет навык по id
func (s *Store) DeleteSkill(ctx context.Context, id string) error {
	if err := s.apiClient.Delete(ctx, "/ats-profiles/skills/"+id); err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}

	s.mutateATS(func(ats *models.ATSProfile) {
		ats.Skills = filterByID(ats.Skills, id, func(sk models.Skill) string { return sk.ID })
	})
	return nil
}

// AddLanguage добавляет язык
func (s *Store) AddLanguage(ctx context.Context, input models.Language) (*models.Language, error) {
	var created models.Language
	if err := s.apiClient.Post(ctx, "/ats-profiles/languages", input, &created); err != nil {
		return nil, fmt.Errorf("failed to add language: %w", err)
	}

	s.mutateATS(func(ats *models.ATSProfile) {
		ats.Languages = append(ats.Languages, created)
	})
	return &created, nil
}

// UpdateLanguage обновляет язык по id
func (s *Store) UpdateLanguage(ctx context.Context, id string, input models.Language) (*models.Language, error) {
	var updated models.Language
	if err := s.apiClient.Put(ctx, "/ats-profiles/languages/"+id, input, &updated); err != nil {
		return nil, fmt.Errorf("failed to update language: %w", err)
	}

	s.mutateATS(func(ats *models.ATSProfile) {
		for i := range ats.Languages {
			if ats.Languages[i].ID == id {
				ats.Languages[i] = updated
			}
		}
	})
	return &updated, nil
}

// DeleteLanguage удаляет язык по id
func (s *Store) DeleteLanguage(ctx context.Context, id string) error {
	if err := s.apiClient.Delete(ctx, "/ats-profiles/languages/"+id); err != nil {
		return fmt.Errorf("failed to delete language: %w", err)
	}

	s.mutateATS(func(ats *models.ATSProfile) {
		ats.Languages = filterByID(ats.Languages, id, func(l models.Language) string { return l.ID })
	})
	return nil
}

// filterByID возвращает срез без элемента с данным id
func filterByID[T any](items []T, id string, idOf func(T) string) []T {
	filtered := items[:0:0]
	for _, item := range items {
		if idOf(item) != id {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
