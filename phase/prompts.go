package phase

// Persona is the fixed system message sent ahead of every model call.
const Persona = "You are an expert Staff-level Software Engineer and AI Architect acting as a Socratic system design coach. " +
	"Your goal is to guide the user from a high-level idea to a well-defined set of system requirements. " +
	"You MUST NOT provide direct answers or solutions. Instead, you MUST ask probing, open-ended questions " +
	"to help the user think through all critical aspects of system design. " +
	"Your tone is professional, encouraging, and collaborative. " +
	"You will guide the user through a series of phases. In each phase, ask the specified questions. " +
	"Base your follow-up questions on the user's responses to dig deeper."

// Guiding prompts, one per discussion phase. Issued as an additional user
// instruction the first time a phase runs.
const (
	VisionAndScopingPrompt = "Let's begin with the big picture. To build a solid foundation, we need to understand the 'why' behind this project.\n\n" +
		"First, what is the core problem you're aiming to solve? Who are your primary users, and what are their biggest pain points that this system will address?\n\n" +
		"Next, what are the absolute, must-have outcomes for a version 1? Think about the minimum viable product (MVP) that delivers real value.\n\n" +
		"Finally, let's talk about constraints. Are there any hard limits on budget, timeline, team expertise, or required use of existing company infrastructure?"

	FunctionalRequirementsPrompt = "Great, we have a clear vision. Now, let's detail *what* the system will do. Let's define the functional requirements.\n\n" +
		"Could you describe the key user journeys? For example, walk me through the steps a user would take to accomplish their main goal, from start to finish.\n\n" +
		"Can you list the core features as user stories? The format 'As a [user type], I can [perform an action] so that [I get this benefit]' is very helpful.\n\n" +
		"Will this system expose an API for other services or clients? If so, what are the crucial endpoints you envision, such as `POST /users` or `GET /products/{id}`?"

	DataModelPrompt = "Excellent. With the functionality defined, let's focus on the data—the lifeblood of the system.\n\n" +
		"What are the fundamental entities or 'nouns' in your system? Think about core concepts like 'User', 'Product', 'Order', 'Document', etc.\n\n" +
		"How do these entities relate to each other? Is it one-to-many (a User has many Orders), many-to-many (a Product can be in many Categories)?\n\n" +
		"What kind of data will you store for each entity? Is it highly structured like a user profile, semi-structured like a JSON document, or unstructured like a full blog post or image?\n\n" +
		"Crucially, let's consider the access patterns. Will your system be read-heavy (like a news site), write-heavy (like a logging service), or balanced?"

	NFRAndScalePrompt = "Now let's discuss the non-functional requirements (NFRs), which define the system's quality and scalability.\n\n" +
		"Let's do a 'back-of-the-envelope' scale estimation. How many daily active users and requests per second are you targeting at launch, and then in one year?\n\n" +
		"- **Latency:** What is an acceptable response time for your users? For example, should 95% of requests complete in under 200ms?\n" +
		"- **Availability:** How critical is uptime? Are you aiming for 'three nines' (99.9% uptime, ~8.7h downtime/year), 'four nines' (99.99%, ~52m downtime/year), or is less availability acceptable initially?\n" +
		"- **Consistency:** If data is written to the system, does it need to be readable by everyone instantly (strong consistency), or is a small delay acceptable (eventual consistency)?"

	ArchitectureAndComponentsPrompt = "With a clear picture of the requirements, let's start sketching a high-level architectural blueprint.\n\n" +
		"Let's think in terms of major building blocks. We will almost certainly need:\n" +
		"- A **Client-Facing Interface** (e.g., Web Server, API Gateway)\n" +
		"- The **Core Business Logic** (e.g., Application Server or Serverless Functions)\n" +
		"- A **Primary Data Store** (e.g., Database)\n\n" +
		"What other supporting services do you foresee? Consider components for:\n" +
		"- **Traffic Management** (Load Balancers)\n" +
		"- **Performance** (Caches)\n" +
		"- **Asynchronous Communication** (Message Queues, Event Buses)\n" +
		"- **User Identity** (Authentication/Authorization Service)\n" +
		"- **Intensive Tasks** (Background Workers)"

	DeepDiveAndTradeoffsPrompt = "This architecture looks promising. The true mark of a great design is understanding its trade-offs. Let's challenge some of our assumptions.\n\n" +
		"Let's pick a key component we've discussed, like the database. If you were thinking of a relational SQL database, what are the pros and cons of that choice versus a NoSQL alternative (like a document, key-value, or graph store) for this specific use case?\n\n" +
		"Now consider how our services will communicate. What are the trade-offs between using synchronous APIs (like REST or gRPC) versus adopting an asynchronous, event-driven pattern for your system's core workflows? When would one be clearly better than the other?"
)

// SummaryInstruction precedes the rendered design document when asking the
// model for the final synthesis.
const SummaryInstruction = "We've covered a lot of ground. I will now synthesize our entire discussion, from vision to trade-offs, into a consolidated system design document. " +
	"Please review it and let me know if there are any gaps or misinterpretations.\n\n" +
	"Here is the summary of your system design based on our conversation:\n\n"
